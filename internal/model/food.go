package model

import (
	"github.com/deppfellow/nutri-api/internal/i18n"
	"github.com/deppfellow/nutri-api/internal/validation"
)

// Food is a food item with its macronutrients per portion.
type Food struct {
	Base
	NameFood     string  `gorm:"not null" json:"nameFood"`
	Protein      float64 `gorm:"not null" json:"protein"`
	Carbohydrate float64 `gorm:"not null" json:"carbohydrate"`
	Fat          float64 `gorm:"not null" json:"fat"`
}

func (Food) TableName() string {
	return "foods"
}

// FoodFields are the replaceable fields of a food. Numbers are pointers so a
// missing field is told apart from an explicit zero; negatives are accepted.
type FoodFields struct {
	NameFood     string   `json:"nameFood" validate:"required,notblank"`
	Protein      *float64 `json:"protein" validate:"required"`
	Carbohydrate *float64 `json:"carbohydrate" validate:"required"`
	Fat          *float64 `json:"fat" validate:"required"`
}

// Apply copies the fields onto f. Call it only after validation.
func (p FoodFields) Apply(f *Food) {
	f.NameFood = p.NameFood
	f.Protein = *p.Protein
	f.Carbohydrate = *p.Carbohydrate
	f.Fat = *p.Fat
}

// ------------------------------------------------------------

type CreateFoodPayload struct {
	FoodFields
}

func (p *CreateFoodPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

// UpdateFoodPayload fully replaces a food. The id comes from the path
// (PUT /food/:id) or from the body.
type UpdateFoodPayload struct {
	ID string `param:"id" json:"id" validate:"required,notblank"`
	FoodFields
}

func (p *UpdateFoodPayload) Validate() error {
	return validation.Struct(p)
}

func (p *UpdateFoodPayload) Identifier() string {
	return p.ID
}

func (p *UpdateFoodPayload) MessageKey() string {
	return i18n.MsgInvalidFields
}

// ------------------------------------------------------------

type DeleteFoodPayload struct {
	ID string `param:"id" json:"id" validate:"required,notblank"`
}

func (p *DeleteFoodPayload) Validate() error {
	return validation.Struct(p)
}

func (p *DeleteFoodPayload) Identifier() string {
	return p.ID
}

func (p *DeleteFoodPayload) MessageKey() string {
	return i18n.MsgInvalidID
}

// ------------------------------------------------------------

type ListFoodsPayload struct{}

func (p *ListFoodsPayload) Validate() error {
	return nil
}
