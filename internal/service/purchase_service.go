package service

import (
	"context"
	"time"

	"tiendapos/internal/apierror"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseService interface {
	// Commit registers a supplier purchase and increments the stock of
	// every line's product inside one transaction.
	Commit(ctx context.Context, access *Access, req dto.CommitPurchaseRequest) (*dto.PurchaseResponse, error)
	List(ctx context.Context, access *Access, page, limit int) (*dto.PurchaseListResponse, error)
}

type purchaseService struct {
	purchases repository.PurchaseRepository
	products  repository.ProductRepository
	cache     *ProductCache
}

func NewPurchaseService(purchases repository.PurchaseRepository, products repository.ProductRepository, cache *ProductCache) PurchaseService {
	return &purchaseService{purchases: purchases, products: products, cache: cache}
}

func (s *purchaseService) Commit(ctx context.Context, access *Access, req dto.CommitPurchaseRequest) (*dto.PurchaseResponse, error) {
	purchase := &model.Purchase{
		TenantID:     access.TenantID,
		OperatorID:   access.OperatorID,
		SupplierName: req.SupplierName,
		Items:        make([]model.PurchaseItem, 0, len(req.Items)),
	}

	total := decimal.Zero
	for _, it := range req.Items {
		productID, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, apierror.Validation("Identificador de producto inválido: %s", it.ProductID)
		}
		if it.CostPrice.IsNegative() {
			return nil, apierror.Validation("El costo no puede ser negativo")
		}
		// The product must belong to this tenant before its stock moves.
		if _, err := s.products.FindByID(ctx, access.TenantID, productID); err != nil {
			return nil, apierror.NotFound("Producto")
		}
		purchase.Items = append(purchase.Items, model.PurchaseItem{
			ProductID: productID,
			Qty:       it.Qty,
			CostPrice: it.CostPrice,
		})
		total = total.Add(it.CostPrice.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	purchase.Total = total

	err := runTx(s.purchases.DB(), func(tx *gorm.DB) error {
		if err := s.purchases.Create(ctx, tx, purchase); err != nil {
			return err
		}
		for _, it := range purchase.Items {
			if err := s.products.IncrementStockTx(tx, it.ProductID, it.Qty); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, access.TenantID)
	return toPurchaseResponse(purchase), nil
}

func (s *purchaseService) List(ctx context.Context, access *Access, page, limit int) (*dto.PurchaseListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	purchases, total, err := s.purchases.List(ctx, access.TenantID, page, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.PurchaseListResponse{
		Total: total,
		Page:  page,
		Limit: limit,
		Data:  make([]dto.PurchaseResponse, 0, len(purchases)),
	}
	for i := range purchases {
		resp.Data = append(resp.Data, *toPurchaseResponse(&purchases[i]))
	}
	return resp, nil
}

func toPurchaseResponse(p *model.Purchase) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:           p.ID.String(),
		SupplierName: p.SupplierName,
		Total:        p.Total,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		Items:        make([]dto.PurchaseItemResponse, 0, len(p.Items)),
	}
	for _, it := range p.Items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ProductID: it.ProductID.String(),
			Qty:       it.Qty,
			CostPrice: it.CostPrice,
		})
	}
	return resp
}
