package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required,oneof=admin cashier"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MemberResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	BusinessName string `json:"business_name,omitempty"`
	Role         string `json:"role"`
	Status       string `json:"status"`
}

type InvitationResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AddMemberResponse reports which path the add took: an active membership for
// an existing profile, or a pending invitation.
type AddMemberResponse struct {
	Member     *MemberResponse     `json:"member,omitempty"`
	Invitation *InvitationResponse `json:"invitation,omitempty"`
}
