package repository

import (
	"context"

	"tiendapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamRepository interface {
	// FindActiveByUserID returns gorm.ErrRecordNotFound when the operator is
	// not an active member of any team (i.e. they act as their own tenant).
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*model.TeamMember, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.TeamMember, error)
	CreateMember(ctx context.Context, m *model.TeamMember) error
	DeleteMember(ctx context.Context, ownerID, memberID uuid.UUID) error
	CreateInvitation(ctx context.Context, inv *model.TeamInvitation) error
	ListInvitations(ctx context.Context, ownerID uuid.UUID) ([]model.TeamInvitation, error)
}

type teamRepo struct{ db *gorm.DB }

func NewTeamRepository(db *gorm.DB) TeamRepository { return &teamRepo{db: db} }

func (r *teamRepo) FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*model.TeamMember, error) {
	var m model.TeamMember
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.StatusActive).
		First(&m).Error
	return &m, err
}

func (r *teamRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.TeamMember, error) {
	var members []model.TeamMember
	err := r.db.WithContext(ctx).Preload("Profile").
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

func (r *teamRepo) CreateMember(ctx context.Context, m *model.TeamMember) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *teamRepo) DeleteMember(ctx context.Context, ownerID, memberID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&model.TeamMember{}, "id = ?", memberID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *teamRepo) CreateInvitation(ctx context.Context, inv *model.TeamInvitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *teamRepo) ListInvitations(ctx context.Context, ownerID uuid.UUID) ([]model.TeamInvitation, error) {
	var invs []model.TeamInvitation
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&invs).Error
	return invs, err
}
