package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RegisterOpen   = "open"
	RegisterClosed = "closed"
)

// CashRegister is a cash-drawer session bounded by an open/close pair.
// Created on open, mutated once on close, never deleted. A partial unique
// index on (operator_id) WHERE status = 'open' enforces at most one open
// register per operator even across concurrent sessions — see infra schema
// patches.
type CashRegister struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OperatorID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status        string           `gorm:"type:varchar(10);not null;default:'open'"`
	OpeningAmount decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	ClosingAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
	OpenedAt      time.Time
	ClosedAt      *time.Time
}
