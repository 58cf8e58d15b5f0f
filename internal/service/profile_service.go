package service

import (
	"context"
	"errors"
	"strings"

	"tiendapos/internal/apierror"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"

	"gorm.io/gorm"
)

type ProfileService interface {
	// Get returns the tenant's business profile. Employees read their
	// employer's profile, not their own.
	Get(ctx context.Context, access *Access) (*dto.ProfileResponse, error)
	// Update writes business metadata. Only the tenant owner or an admin
	// reaches this through the settings route.
	Update(ctx context.Context, access *Access, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	profiles repository.ProfileRepository
}

func NewProfileService(profiles repository.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Get(ctx context.Context, access *Access) (*dto.ProfileResponse, error) {
	p, err := s.findTenantProfile(ctx, access)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(p), nil
}

func (s *profileService) Update(ctx context.Context, access *Access, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	p, err := s.findTenantProfile(ctx, access)
	if err != nil {
		return nil, err
	}
	if req.BusinessName != "" {
		p.BusinessName = req.BusinessName
	}
	if req.Address != "" {
		p.Address = req.Address
	}
	if req.Phone != "" {
		p.Phone = req.Phone
	}
	if req.TaxID != "" {
		p.TaxID = req.TaxID
	}
	if req.Currency != "" {
		p.Currency = strings.ToUpper(req.Currency)
	}
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProfileResponse(p), nil
}

func (s *profileService) findTenantProfile(ctx context.Context, access *Access) (*model.Profile, error) {
	p, err := s.profiles.FindByID(ctx, access.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Perfil")
		}
		return nil, err
	}
	return p, nil
}

func toProfileResponse(p *model.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:           p.ID.String(),
		Email:        p.Email,
		BusinessName: p.BusinessName,
		Address:      p.Address,
		Phone:        p.Phone,
		TaxID:        p.TaxID,
		Currency:     p.Currency,
		Status:       p.Status,
	}
}
