package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product belongs to one tenant. Stock is only ever changed through atomic
// relative updates (sale decrement, purchase increment, manual adjustment) —
// never read-then-write.
type Product struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name     string          `gorm:"index;not null"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock    int             `gorm:"not null;default:0"`
	// Icon is a display tag chosen by the operator (emoji or short label).
	Icon      string `gorm:"not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
