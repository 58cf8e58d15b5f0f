package service

import (
	"context"
	"time"

	"tiendapos/internal/apierror"
	"tiendapos/internal/cart"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"
	"tiendapos/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	// Commit turns the operator's cart into a persisted sale. The sale
	// rows, their items and every stock decrement land in one database
	// transaction; any failure leaves both the database and the cart
	// untouched.
	Commit(ctx context.Context, access *Access, req dto.CommitSaleRequest) (*dto.SaleResponse, error)
	List(ctx context.Context, access *Access, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	sales      repository.SaleRepository
	products   repository.ProductRepository
	registers  RegisterService
	carts      *cart.Store
	cache      *ProductCache
	dispatcher *worker.Dispatcher
	allowNeg   bool
}

func NewSaleService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	registers RegisterService,
	carts *cart.Store,
	cache *ProductCache,
	dispatcher *worker.Dispatcher,
	allowNegativeStock bool,
) SaleService {
	return &saleService{
		sales:      sales,
		products:   products,
		registers:  registers,
		carts:      carts,
		cache:      cache,
		dispatcher: dispatcher,
		allowNeg:   allowNegativeStock,
	}
}

func (s *saleService) Commit(ctx context.Context, access *Access, req dto.CommitSaleRequest) (*dto.SaleResponse, error) {
	reg, err := s.registers.FindOpen(ctx, access.OperatorID)
	if err != nil {
		return nil, err
	}
	if reg.ID.String() != req.RegisterID {
		return nil, apierror.ErrRegisterClosed
	}

	c := s.carts.Get(access.OperatorID)
	if c.Empty() {
		return nil, apierror.Validation("El carrito está vacío")
	}

	items := c.Items()
	total := c.Total()

	sale := &model.Sale{
		TenantID:      access.TenantID,
		OperatorID:    access.OperatorID,
		RegisterID:    reg.ID,
		Total:         total,
		PaymentMethod: req.PaymentMethod,
	}

	switch req.PaymentMethod {
	case model.PaymentCash:
		if req.Tendered == nil {
			return nil, apierror.Validation("El monto recibido es obligatorio para pagos en efectivo")
		}
		if req.Tendered.LessThan(total) {
			return nil, &apierror.InsufficientPaymentError{Shortfall: total.Sub(*req.Tendered)}
		}
		change := req.Tendered.Sub(total)
		sale.Tendered = req.Tendered
		sale.Change = &change
	case model.PaymentCard:
		// Card payments are exact by definition; tendered and change
		// stay null.
	default:
		return nil, apierror.Validation("Método de pago inválido: %s", req.PaymentMethod)
	}

	sale.Items = make([]model.SaleItem, 0, len(items))
	for _, it := range items {
		sale.Items = append(sale.Items, model.SaleItem{
			ProductID:   it.ProductID,
			ProductName: it.Name,
			Qty:         it.Qty,
			Price:       it.Price,
		})
	}

	err = runTx(s.sales.DB(), func(tx *gorm.DB) error {
		if err := s.sales.Create(ctx, tx, sale); err != nil {
			return err
		}
		for _, it := range items {
			affected, err := s.products.DecrementStockTx(tx, it.ProductID, it.Qty, !s.allowNeg)
			if err != nil {
				return err
			}
			if affected == 0 {
				return apierror.Validation("Stock insuficiente para %s", it.Name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Only after the transaction commits: the cart survives any failed
	// attempt so the operator can correct and retry.
	c.Clear()
	s.cache.Invalidate(ctx, access.TenantID)

	if s.dispatcher != nil {
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ProductID.String())
		}
		if err := s.dispatcher.EnqueueLowStock(ctx, worker.LowStockPayload{
			TenantID:   access.TenantID.String(),
			ProductIDs: ids,
		}); err != nil {
			log.Warn().Err(err).Msg("no se pudo encolar la verificación de stock bajo")
		}
	}

	return toSaleResponse(sale), nil
}

func (s *saleService) List(ctx context.Context, access *Access, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Date != "" {
		if _, err := time.Parse("2006-01-02", filter.Date); err != nil {
			return nil, apierror.Validation("Fecha inválida, use el formato AAAA-MM-DD")
		}
	}
	sales, total, err := s.sales.List(ctx, access.TenantID, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.SaleListResponse{
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
		Data:  make([]dto.SaleResponse, 0, len(sales)),
	}
	for i := range sales {
		resp.Data = append(resp.Data, *toSaleResponse(&sales[i]))
	}
	return resp, nil
}

func toSaleResponse(sale *model.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID.String(),
		RegisterID:    sale.RegisterID.String(),
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		CreatedAt:     sale.CreatedAt.Format(time.RFC3339),
		Items:         make([]dto.SaleItemResponse, 0, len(sale.Items)),
	}
	if sale.Tendered != nil {
		v := *sale.Tendered
		resp.Tendered = &v
	}
	if sale.Change != nil {
		v := *sale.Change
		resp.Change = &v
	}
	for _, it := range sale.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ProductID:   it.ProductID.String(),
			ProductName: it.ProductName,
			Qty:         it.Qty,
			Price:       it.Price,
			Subtotal:    it.Price.Mul(decimal.NewFromInt(int64(it.Qty))),
		})
	}
	return resp
}
