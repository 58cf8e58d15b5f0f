package repository

import (
	"context"

	"tiendapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	List(ctx context.Context, tenantID uuid.UUID) ([]model.Expense, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	CreateCategory(ctx context.Context, c *model.ExpenseCategory) error
	ListCategories(ctx context.Context, tenantID uuid.UUID) ([]model.ExpenseCategory, error)
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) List(ctx context.Context, tenantID uuid.UUID) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).Preload("Category").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&model.Expense{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *expenseRepo) CreateCategory(ctx context.Context, c *model.ExpenseCategory) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *expenseRepo) ListCategories(ctx context.Context, tenantID uuid.UUID) ([]model.ExpenseCategory, error) {
	var cats []model.ExpenseCategory
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&cats).Error
	return cats, err
}
