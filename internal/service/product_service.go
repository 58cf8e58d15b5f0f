package service

import (
	"context"
	"errors"

	"tiendapos/internal/apierror"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, access *Access, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, access *Access, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, access *Access, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, access *Access, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, access *Access, id uuid.UUID) error
	AdjustStock(ctx context.Context, access *Access, id uuid.UUID, delta int) (*dto.ProductResponse, error)
}

type productService struct {
	products repository.ProductRepository
	cache    *ProductCache
}

func NewProductService(products repository.ProductRepository, cache *ProductCache) ProductService {
	return &productService{products: products, cache: cache}
}

func (s *productService) Create(ctx context.Context, access *Access, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Price.IsNegative() {
		return nil, apierror.Validation("El precio no puede ser negativo")
	}
	p := &model.Product{
		TenantID: access.TenantID,
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		Icon:     req.Icon,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, access.TenantID)
	return toProductResponse(p), nil
}

func (s *productService) Get(ctx context.Context, access *Access, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.findProduct(ctx, access, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// List serves the default first page from cache when possible. Filtered or
// deep pages always hit the database.
func (s *productService) List(ctx context.Context, access *Access, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	cacheable := filter.Search == "" && filter.Page == 1 && filter.Limit == 20
	if cacheable {
		if cached, ok := s.cache.Get(ctx, access.TenantID); ok {
			return cached, nil
		}
	}

	products, total, err := s.products.List(ctx, access.TenantID, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
		Data:  make([]dto.ProductResponse, 0, len(products)),
	}
	for i := range products {
		resp.Data = append(resp.Data, *toProductResponse(&products[i]))
	}

	if cacheable {
		s.cache.Set(ctx, access.TenantID, resp)
	}
	return resp, nil
}

func (s *productService) Update(ctx context.Context, access *Access, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.findProduct(ctx, access, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apierror.Validation("El precio no puede ser negativo")
		}
		p.Price = *req.Price
	}
	if req.Icon != nil {
		p.Icon = *req.Icon
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, access.TenantID)
	return toProductResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, access *Access, id uuid.UUID) error {
	if err := s.products.Delete(ctx, access.TenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Producto")
		}
		return err
	}
	s.cache.Invalidate(ctx, access.TenantID)
	return nil
}

// AdjustStock applies a manual correction outside any sale or purchase.
func (s *productService) AdjustStock(ctx context.Context, access *Access, id uuid.UUID, delta int) (*dto.ProductResponse, error) {
	if err := s.products.AdjustStock(ctx, access.TenantID, id, delta); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto")
		}
		return nil, err
	}
	s.cache.Invalidate(ctx, access.TenantID)
	return s.Get(ctx, access, id)
}

func (s *productService) findProduct(ctx context.Context, access *Access, id uuid.UUID) (*model.Product, error) {
	p, err := s.products.FindByID(ctx, access.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto")
		}
		return nil, err
	}
	return p, nil
}

func toProductResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:    p.ID.String(),
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
		Icon:  p.Icon,
	}
}
