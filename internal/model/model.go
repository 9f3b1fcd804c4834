// Package model declares the persisted entities and the request payloads
// accepted for them.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Base holds the identity and timestamps shared by every table.
// The id is generated by the database.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
