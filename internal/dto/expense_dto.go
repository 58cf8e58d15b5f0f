package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateExpenseRequest struct {
	CategoryID  *string         `json:"category_id" validate:"omitempty,uuid"`
	Description string          `json:"description" validate:"required,min=1"`
	Amount      decimal.Decimal `json:"amount"      validate:"required"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   string          `json:"created_at"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
