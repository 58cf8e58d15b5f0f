package service

import (
	"context"
	"errors"
	"time"

	"tiendapos/internal/apierror"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseService interface {
	Create(ctx context.Context, access *Access, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	List(ctx context.Context, access *Access) ([]dto.ExpenseResponse, error)
	Delete(ctx context.Context, access *Access, id uuid.UUID) error

	CreateCategory(ctx context.Context, access *Access, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context, access *Access) ([]dto.CategoryResponse, error)
}

type expenseService struct {
	expenses repository.ExpenseRepository
}

func NewExpenseService(expenses repository.ExpenseRepository) ExpenseService {
	return &expenseService{expenses: expenses}
}

func (s *expenseService) Create(ctx context.Context, access *Access, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, apierror.Validation("El monto del gasto debe ser mayor a cero")
	}
	e := &model.Expense{
		TenantID:    access.TenantID,
		OperatorID:  access.OperatorID,
		Description: req.Description,
		Amount:      req.Amount,
	}
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apierror.Validation("Identificador de categoría inválido")
		}
		e.CategoryID = &id
	}
	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

func (s *expenseService) List(ctx context.Context, access *Access) ([]dto.ExpenseResponse, error) {
	expenses, err := s.expenses.List(ctx, access.TenantID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		resp = append(resp, *toExpenseResponse(&expenses[i]))
	}
	return resp, nil
}

func (s *expenseService) Delete(ctx context.Context, access *Access, id uuid.UUID) error {
	if err := s.expenses.Delete(ctx, access.TenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Gasto")
		}
		return err
	}
	return nil
}

func (s *expenseService) CreateCategory(ctx context.Context, access *Access, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c := &model.ExpenseCategory{
		TenantID: access.TenantID,
		Name:     req.Name,
	}
	if err := s.expenses.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID.String(), Name: c.Name}, nil
}

func (s *expenseService) ListCategories(ctx context.Context, access *Access) ([]dto.CategoryResponse, error) {
	categories, err := s.expenses.ListCategories(ctx, access.TenantID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, dto.CategoryResponse{ID: c.ID.String(), Name: c.Name})
	}
	return resp, nil
}

func toExpenseResponse(e *model.Expense) *dto.ExpenseResponse {
	resp := &dto.ExpenseResponse{
		ID:          e.ID.String(),
		Description: e.Description,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
	if e.Category != nil {
		resp.Category = e.Category.Name
	}
	return resp
}
