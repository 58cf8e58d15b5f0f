package service

import (
	"context"
	"errors"

	"tiendapos/internal/apierror"
	"tiendapos/internal/cart"
	"tiendapos/internal/dto"
	"tiendapos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService interface {
	// Add snapshots the product into the operator's cart, or increments
	// the existing line.
	Add(ctx context.Context, access *Access, productID uuid.UUID) (*dto.CartResponse, error)
	// SetQuantity sets an absolute quantity. Zero is answered with a
	// removal prompt instead of a silent delete.
	SetQuantity(ctx context.Context, access *Access, productID uuid.UUID, qty int) (*dto.CartResponse, error)
	Adjust(ctx context.Context, access *Access, productID uuid.UUID, delta int) (*dto.CartResponse, error)
	Remove(access *Access, productID uuid.UUID) *dto.CartResponse
	Clear(access *Access) *dto.CartResponse
	View(access *Access) *dto.CartResponse
}

type cartService struct {
	carts    *cart.Store
	products repository.ProductRepository
}

func NewCartService(carts *cart.Store, products repository.ProductRepository) CartService {
	return &cartService{carts: carts, products: products}
}

func (s *cartService) Add(ctx context.Context, access *Access, productID uuid.UUID) (*dto.CartResponse, error) {
	p, err := s.products.FindByID(ctx, access.TenantID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto")
		}
		return nil, err
	}
	c := s.carts.Get(access.OperatorID)
	c.Add(p)
	return toCartResponse(c), nil
}

func (s *cartService) SetQuantity(ctx context.Context, access *Access, productID uuid.UUID, qty int) (*dto.CartResponse, error) {
	c := s.carts.Get(access.OperatorID)
	if err := c.SetQuantity(productID, qty); err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

func (s *cartService) Adjust(ctx context.Context, access *Access, productID uuid.UUID, delta int) (*dto.CartResponse, error) {
	c := s.carts.Get(access.OperatorID)
	if err := c.Adjust(productID, delta); err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

func (s *cartService) Remove(access *Access, productID uuid.UUID) *dto.CartResponse {
	c := s.carts.Get(access.OperatorID)
	c.Remove(productID)
	return toCartResponse(c)
}

func (s *cartService) Clear(access *Access) *dto.CartResponse {
	c := s.carts.Get(access.OperatorID)
	c.Clear()
	return toCartResponse(c)
}

func (s *cartService) View(access *Access) *dto.CartResponse {
	return toCartResponse(s.carts.Get(access.OperatorID))
}

func toCartResponse(c *cart.Cart) *dto.CartResponse {
	items := c.Items()
	resp := &dto.CartResponse{
		Items: make([]dto.CartItemResponse, 0, len(items)),
		Total: c.Total(),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.CartItemResponse{
			ProductID: it.ProductID.String(),
			Name:      it.Name,
			Price:     it.Price,
			Icon:      it.Icon,
			Qty:       it.Qty,
			Subtotal:  it.Price.Mul(decimal.NewFromInt(int64(it.Qty))),
		})
	}
	return resp
}
