package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// Profile holds one operator's account and, for owners, the business metadata
// of their tenant. The profile id equals the operator id issued by the
// external identity provider; a tenant is identified by its owner's id.
type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	BusinessName string
	Address      string
	Phone        string
	TaxID        string `gorm:"column:tax_id"`
	Currency     string `gorm:"type:varchar(10);not null;default:'USD'"`
	Status       string `gorm:"type:varchar(20);not null;default:'active'"`
	IsSuperAdmin bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
