package service

import (
	"context"
	"errors"
	"time"

	"tiendapos/internal/apierror"
	"tiendapos/internal/cart"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterService interface {
	// Open starts a cash session for the operator. At most one open
	// session per operator exists at any time.
	Open(ctx context.Context, operatorID uuid.UUID, req dto.OpenRegisterRequest) (*dto.RegisterResponse, error)
	// Close ends the operator's open session, recording the counted amount.
	Close(ctx context.Context, operatorID uuid.UUID, req dto.CloseRegisterRequest) (*dto.RegisterResponse, error)
	// Status returns the operator's open session, or ErrRegisterClosed.
	Status(ctx context.Context, operatorID uuid.UUID) (*dto.RegisterResponse, error)
	// FindOpen is the internal lookup other services use to gate sales.
	FindOpen(ctx context.Context, operatorID uuid.UUID) (*model.CashRegister, error)
}

type registerService struct {
	registers repository.RegisterRepository
	carts     *cart.Store
}

func NewRegisterService(registers repository.RegisterRepository, carts *cart.Store) RegisterService {
	return &registerService{registers: registers, carts: carts}
}

func (s *registerService) Open(ctx context.Context, operatorID uuid.UUID, req dto.OpenRegisterRequest) (*dto.RegisterResponse, error) {
	if req.OpeningAmount.IsNegative() {
		return nil, apierror.Validation("El monto de apertura no puede ser negativo")
	}

	// Pre-check for a friendly error; the partial unique index on
	// (operator_id) WHERE status = 'open' is the real guarantee under
	// concurrent opens.
	if _, err := s.registers.FindOpenByOperator(ctx, operatorID); err == nil {
		return nil, apierror.ErrDuplicateRegister
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	reg := &model.CashRegister{
		OperatorID:    operatorID,
		Status:        model.RegisterOpen,
		OpeningAmount: req.OpeningAmount,
		OpenedAt:      time.Now(),
	}
	if err := s.registers.Create(ctx, reg); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.ErrDuplicateRegister
		}
		return nil, err
	}
	return toRegisterResponse(reg), nil
}

func (s *registerService) Close(ctx context.Context, operatorID uuid.UUID, req dto.CloseRegisterRequest) (*dto.RegisterResponse, error) {
	if req.ClosingAmount.IsNegative() {
		return nil, apierror.Validation("El monto de cierre no puede ser negativo")
	}

	reg, err := s.registers.FindOpenByOperator(ctx, operatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrRegisterClosed
		}
		return nil, err
	}

	now := time.Now()
	reg.Status = model.RegisterClosed
	reg.ClosingAmount = &req.ClosingAmount
	reg.ClosedAt = &now
	if err := s.registers.Update(ctx, reg); err != nil {
		return nil, err
	}
	// End of shift: whatever was left in the cart is discarded with it.
	s.carts.Drop(operatorID)
	return toRegisterResponse(reg), nil
}

func (s *registerService) Status(ctx context.Context, operatorID uuid.UUID) (*dto.RegisterResponse, error) {
	reg, err := s.FindOpen(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	return toRegisterResponse(reg), nil
}

func (s *registerService) FindOpen(ctx context.Context, operatorID uuid.UUID) (*model.CashRegister, error) {
	reg, err := s.registers.FindOpenByOperator(ctx, operatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrRegisterClosed
		}
		return nil, err
	}
	return reg, nil
}

func toRegisterResponse(reg *model.CashRegister) *dto.RegisterResponse {
	resp := &dto.RegisterResponse{
		ID:            reg.ID.String(),
		Status:        reg.Status,
		OpeningAmount: reg.OpeningAmount,
		OpenedAt:      reg.OpenedAt.Format(time.RFC3339),
	}
	if reg.ClosingAmount != nil {
		v := *reg.ClosingAmount
		resp.ClosingAmount = &v
	}
	if reg.ClosedAt != nil {
		t := reg.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	return resp
}
