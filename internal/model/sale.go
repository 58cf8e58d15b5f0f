package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at the POS.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

// Sale is an append-only ledger entry. Rows are never updated or deleted.
// Tendered and Change are set for cash sales only.
type Sale struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	OperatorID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	RegisterID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Total         decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string           `gorm:"type:varchar(10);not null"`
	Tendered      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Change        *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CreatedAt     time.Time        `gorm:"index"`

	Items []SaleItem `gorm:"foreignKey:SaleID"`
}

// SaleItem snapshots the product name and unit price at sale time so later
// product edits or deletes never rewrite history.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"not null"`
	Qty         int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
