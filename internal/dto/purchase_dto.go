package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type PurchaseItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Qty       int             `json:"qty"        validate:"required,min=1"`
	CostPrice decimal.Decimal `json:"cost_price" validate:"required"`
}

type CommitPurchaseRequest struct {
	SupplierName string                `json:"supplier_name" validate:"required,min=1"`
	Items        []PurchaseItemRequest `json:"items"         validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PurchaseItemResponse struct {
	ProductID string          `json:"product_id"`
	Qty       int             `json:"qty"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

type PurchaseResponse struct {
	ID           string                 `json:"id"`
	SupplierName string                 `json:"supplier_name"`
	Total        decimal.Decimal        `json:"total"`
	Items        []PurchaseItemResponse `json:"items"`
	CreatedAt    string                 `json:"created_at"`
}

type PurchaseListResponse struct {
	Data  []PurchaseResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
