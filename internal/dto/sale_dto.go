package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Date  string `form:"date"` // YYYY-MM-DD; empty = today
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CommitSaleRequest settles the operator's current cart against an open
// register. Tendered is required for cash and ignored for card.
type CommitSaleRequest struct {
	RegisterID    string           `json:"register_id"    validate:"required,uuid"`
	PaymentMethod string           `json:"payment_method" validate:"required,oneof=cash card"`
	Tendered      *decimal.Decimal `json:"tendered"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Qty         int             `json:"qty"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	RegisterID    string             `json:"register_id"`
	Items         []SaleItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Tendered      *decimal.Decimal   `json:"tendered,omitempty"`
	Change        *decimal.Decimal   `json:"change,omitempty"`
	CreatedAt     string             `json:"created_at"`
}
