package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// UpdateProfileRequest carries business metadata only — configuration fields
// with no invariants. Suspension and super-admin flags are never writable
// through this request.
type UpdateProfileRequest struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	TaxID        string `json:"tax_id"`
	Currency     string `json:"currency" validate:"omitempty,len=3"`
}

type SetTenantStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProfileResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	TaxID        string `json:"tax_id"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

type TenantResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	BusinessName string `json:"business_name"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}
