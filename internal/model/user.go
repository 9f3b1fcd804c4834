package model

import (
	"github.com/deppfellow/nutri-api/internal/i18n"
	"github.com/deppfellow/nutri-api/internal/validation"
)

// User is an account with an optional nutrition profile.
//
// The password is kept only as a bcrypt hash and never serialized.
// BMR, TDEE and RCI are reserved columns; nothing computes them.
type User struct {
	Base
	Name             string            `gorm:"not null" json:"name"`
	Email            string            `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash     string            `gorm:"column:password_hash;not null" json:"-"`
	Role             Role              `gorm:"type:text;not null" json:"role"`
	Sex              *Sex              `gorm:"type:text" json:"sex"`
	Height           *float64          `json:"height"`
	Weight           *float64          `json:"weight"`
	Age              *float64          `json:"age"`
	PhysicalActivity *PhysicalActivity `gorm:"type:text" json:"PhysicalActivity"`
	Objective        *Objective        `gorm:"type:text" json:"Objective"`
	BMR              *float64          `gorm:"column:bmr" json:"BMR"`
	TDEE             *float64          `gorm:"column:tdee" json:"TDEE"`
	RCI              *float64          `gorm:"column:rci" json:"RCI"`
}

func (User) TableName() string {
	return "users"
}

// ------------------------------------------------------------

type CreateUserPayload struct {
	Name             string            `json:"name" validate:"required,notblank"`
	Email            string            `json:"email" validate:"required,email"`
	Password         string            `json:"password" validate:"required,notblank,max=72"`
	Role             Role              `json:"role" validate:"required,role"`
	Sex              *Sex              `json:"sex" validate:"omitnil,sex"`
	Height           *float64          `json:"height"`
	Weight           *float64          `json:"weight"`
	Age              *float64          `json:"age"`
	PhysicalActivity *PhysicalActivity `json:"PhysicalActivity" validate:"omitnil,activity"`
	Objective        *Objective        `json:"Objective" validate:"omitnil,objective"`
}

func (p *CreateUserPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

// UpdateUserPayload changes the name, the password or both.
type UpdateUserPayload struct {
	ID       string  `param:"id" json:"id" validate:"required,notblank"`
	Name     *string `json:"name" validate:"omitnil,notblank"`
	Password *string `json:"password" validate:"omitnil,notblank,max=72"`
}

func (p *UpdateUserPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}

	if p.Name == nil && p.Password == nil {
		return validation.KeyedValidationError{
			Key: i18n.MsgUserNothingToUpdate,
			Errors: validation.CustomValidationErrors{
				{Field: "name", Message: "name or password is required"},
				{Field: "password", Message: "name or password is required"},
			},
		}
	}
	return nil
}

func (p *UpdateUserPayload) Identifier() string {
	return p.ID
}

func (p *UpdateUserPayload) MessageKey() string {
	return i18n.MsgInvalidFields
}

// ------------------------------------------------------------

type DeleteUserPayload struct {
	ID string `param:"id" json:"id" validate:"required,notblank"`
}

func (p *DeleteUserPayload) Validate() error {
	return validation.Struct(p)
}

func (p *DeleteUserPayload) Identifier() string {
	return p.ID
}

func (p *DeleteUserPayload) MessageKey() string {
	return i18n.MsgInvalidID
}

// ------------------------------------------------------------

type ListUsersPayload struct{}

func (p *ListUsersPayload) Validate() error {
	return nil
}
