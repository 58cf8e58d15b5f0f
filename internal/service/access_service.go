package service

import (
	"context"
	"errors"
	"time"

	"tiendapos/internal/apierror"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"
	"tiendapos/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the operator's resolved privilege level. It is derived per request
// from persisted state, never stored per session.
type Role string

const (
	RoleOwner      Role = "owner"
	RoleAdmin      Role = "admin"
	RoleCashier    Role = "cashier"
	RoleSuperAdmin Role = "super_admin"
)

// Action names a gated capability. Handlers declare the action they need and
// the resolver consults the single actionRoles table — role checks are never
// re-implemented at call sites.
type Action string

const (
	ActionDashboard    Action = "dashboard"
	ActionProducts     Action = "products"
	ActionPOS          Action = "pos"
	ActionSalesHistory Action = "sales_history"
	ActionSettings     Action = "settings"
	ActionPurchases    Action = "purchases"
	ActionExpenses     Action = "expenses"
	ActionReports      Action = "financial_reports"
	ActionTeam         Action = "team"
	ActionTenantAdmin  Action = "tenant_admin"
)

// actionRoles is the centralized action → allowed-roles table. A nil entry
// means any authenticated role. Super-admins bypass the table entirely.
var actionRoles = map[Action][]Role{
	ActionDashboard:    nil,
	ActionProducts:     nil,
	ActionPOS:          nil,
	ActionSalesHistory: {RoleOwner, RoleAdmin},
	ActionSettings:     {RoleOwner, RoleAdmin},
	ActionPurchases:    {RoleOwner, RoleAdmin},
	ActionExpenses:     {RoleOwner, RoleAdmin},
	ActionReports:      {RoleOwner, RoleAdmin},
	ActionTeam:         {RoleOwner, RoleAdmin},
	ActionTenantAdmin:  {RoleSuperAdmin},
}

// Access is the resolved (role, tenant, suspension) tuple for one operator.
// TenantID is uuid.Nil for super-admins, who operate outside any tenant.
type Access struct {
	OperatorID   uuid.UUID
	Role         Role
	TenantID     uuid.UUID
	Suspended    bool
	IsSuperAdmin bool
}

type AccessService interface {
	// Resolve computes the operator's effective role and tenant scope.
	Resolve(ctx context.Context, operatorID uuid.UUID) (*Access, error)
	// Authorize returns nil when the access tuple may perform the action,
	// a SuspendedAccountError when the tenant is suspended, and an
	// AuthorizationError (a redirect signal, not a fault) otherwise.
	Authorize(access *Access, action Action) error

	// Team management — {owner, admin}.
	ListMembers(ctx context.Context, access *Access) ([]dto.MemberResponse, error)
	ListInvitations(ctx context.Context, access *Access) ([]dto.InvitationResponse, error)
	AddMember(ctx context.Context, access *Access, req dto.AddMemberRequest) (*dto.AddMemberResponse, error)
	RemoveMember(ctx context.Context, access *Access, memberID uuid.UUID) error

	// Platform administration — super-admin only.
	ListTenants(ctx context.Context) ([]dto.TenantResponse, error)
	SetTenantStatus(ctx context.Context, tenantID uuid.UUID, status string) error
}

type accessService struct {
	profiles   repository.ProfileRepository
	team       repository.TeamRepository
	dispatcher *worker.Dispatcher
}

func NewAccessService(profiles repository.ProfileRepository, team repository.TeamRepository, dispatcher *worker.Dispatcher) AccessService {
	return &accessService{profiles: profiles, team: team, dispatcher: dispatcher}
}

// ── Resolve ──────────────────────────────────────────────────────────────────
// Resolution order matters and short-circuits:
//   1. super-admin flag on the operator's own profile (never gated by suspension)
//   2. the operator's own suspension
//   3. active team membership → tenant = membership owner, role from the row
//   4. no membership → operator is their own tenant's owner
//   5. the tenant's suspension (an employee of a suspended business is
//      blocked even though their personal account is not)

func (s *accessService) Resolve(ctx context.Context, operatorID uuid.UUID) (*Access, error) {
	me, err := s.profiles.FindByID(ctx, operatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Perfil")
		}
		return nil, err
	}

	if me.IsSuperAdmin {
		return &Access{OperatorID: operatorID, Role: RoleSuperAdmin, IsSuperAdmin: true}, nil
	}

	if me.Status == model.StatusSuspended {
		return &Access{OperatorID: operatorID, Suspended: true}, nil
	}

	tenantID := operatorID
	role := RoleOwner
	if m, err := s.team.FindActiveByUserID(ctx, operatorID); err == nil {
		tenantID = m.OwnerID
		role = Role(m.Role)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	suspended := false
	if tenantID != operatorID {
		owner, err := s.profiles.FindByID(ctx, tenantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFound("Perfil del negocio")
			}
			return nil, err
		}
		suspended = owner.Status == model.StatusSuspended
	}

	return &Access{
		OperatorID: operatorID,
		Role:       role,
		TenantID:   tenantID,
		Suspended:  suspended,
	}, nil
}

func (s *accessService) Authorize(access *Access, action Action) error {
	if access.Suspended {
		return &apierror.SuspendedAccountError{}
	}
	if access.IsSuperAdmin {
		return nil
	}
	roles, ok := actionRoles[action]
	if !ok {
		return &apierror.AuthorizationError{Redirect: "/"}
	}
	if roles == nil {
		return nil
	}
	for _, r := range roles {
		if access.Role == r {
			return nil
		}
	}
	return &apierror.AuthorizationError{Redirect: "/"}
}

// ── Team management ──────────────────────────────────────────────────────────

func (s *accessService) ListMembers(ctx context.Context, access *Access) ([]dto.MemberResponse, error) {
	members, err := s.team.ListByOwner(ctx, access.TenantID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		item := dto.MemberResponse{
			ID:     m.ID.String(),
			UserID: m.UserID.String(),
			Role:   m.Role,
			Status: m.Status,
		}
		if m.Profile != nil {
			item.Email = m.Profile.Email
			item.BusinessName = m.Profile.BusinessName
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func (s *accessService) ListInvitations(ctx context.Context, access *Access) ([]dto.InvitationResponse, error) {
	invs, err := s.team.ListInvitations(ctx, access.TenantID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.InvitationResponse, 0, len(invs))
	for _, inv := range invs {
		resp = append(resp, dto.InvitationResponse{ID: inv.ID.String(), Email: inv.Email, Role: inv.Role})
	}
	return resp, nil
}

// AddMember adds an existing profile as an active member, or records a
// pending invitation (plus an invitation mail) when the invitee has not
// registered yet.
func (s *accessService) AddMember(ctx context.Context, access *Access, req dto.AddMemberRequest) (*dto.AddMemberResponse, error) {
	invitee, err := s.profiles.FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		inv := &model.TeamInvitation{
			Email:   req.Email,
			OwnerID: access.TenantID,
			Role:    req.Role,
		}
		if err := s.team.CreateInvitation(ctx, inv); err != nil {
			return nil, err
		}
		if s.dispatcher != nil {
			_ = s.dispatcher.EnqueueInvitation(ctx, worker.InvitationPayload{
				Email:   req.Email,
				Role:    req.Role,
				OwnerID: access.TenantID.String(),
			})
		}
		return &dto.AddMemberResponse{
			Invitation: &dto.InvitationResponse{ID: inv.ID.String(), Email: inv.Email, Role: inv.Role},
		}, nil
	}

	if invitee.ID == access.TenantID {
		return nil, apierror.Validation("El dueño del negocio no puede ser miembro de su propio equipo")
	}

	member := &model.TeamMember{
		UserID:  invitee.ID,
		OwnerID: access.TenantID,
		Role:    req.Role,
		Status:  model.StatusActive,
	}
	if err := s.team.CreateMember(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Validation("Este usuario ya es miembro de un equipo")
		}
		return nil, err
	}

	return &dto.AddMemberResponse{
		Member: &dto.MemberResponse{
			ID:     member.ID.String(),
			UserID: member.UserID.String(),
			Email:  invitee.Email,
			Role:   member.Role,
			Status: member.Status,
		},
	}, nil
}

func (s *accessService) RemoveMember(ctx context.Context, access *Access, memberID uuid.UUID) error {
	if err := s.team.DeleteMember(ctx, access.TenantID, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Miembro")
		}
		return err
	}
	return nil
}

// ── Platform administration ──────────────────────────────────────────────────

func (s *accessService) ListTenants(ctx context.Context) ([]dto.TenantResponse, error) {
	profiles, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TenantResponse, 0, len(profiles))
	for _, p := range profiles {
		resp = append(resp, dto.TenantResponse{
			ID:           p.ID.String(),
			Email:        p.Email,
			BusinessName: p.BusinessName,
			Status:       p.Status,
			CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// SetTenantStatus suspends or reactivates a tenant. The request is
// pre-confirmed by the caller; no interactive confirmation happens here.
func (s *accessService) SetTenantStatus(ctx context.Context, tenantID uuid.UUID, status string) error {
	if status != model.StatusActive && status != model.StatusSuspended {
		return apierror.Validation("Estado inválido: %s", status)
	}
	target, err := s.profiles.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Perfil")
		}
		return err
	}
	if target.IsSuperAdmin {
		return apierror.Validation("No se puede suspender a un administrador de plataforma")
	}
	return s.profiles.UpdateStatus(ctx, tenantID, status)
}
