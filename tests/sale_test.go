package tests

import (
	"context"
	"testing"
	"time"

	"tiendapos/internal/apierror"
	"tiendapos/internal/cart"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"
	"tiendapos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory ProductRepository ──────────────────────────────────────────────

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *fakeProductRepo) seed(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return p
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	r.seed(p)
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) List(_ context.Context, tenantID uuid.UUID, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var result []model.Product
	for _, p := range r.products {
		if p.TenantID == tenantID {
			result = append(result, *p)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, tenantID, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int, guard bool) (int64, error) {
	p, ok := r.products[id]
	if !ok {
		return 0, nil
	}
	if guard && p.Stock < qty {
		return 0, nil
	}
	p.Stock -= qty
	return 1, nil
}

func (r *fakeProductRepo) IncrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += qty
	return nil
}

func (r *fakeProductRepo) FindBelowStock(_ context.Context, tenantID uuid.UUID, threshold int) ([]model.Product, error) {
	var result []model.Product
	for _, p := range r.products {
		if p.TenantID == tenantID && p.Stock <= threshold {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *fakeProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

// ── In-memory SaleRepository ─────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales []model.Sale
}

func (r *fakeSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	r.sales = append(r.sales, *s)
	return nil
}

func (r *fakeSaleRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*model.Sale, error) {
	for i := range r.sales {
		if r.sales[i].ID == id && r.sales[i].TenantID == tenantID {
			return &r.sales[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSaleRepo) List(_ context.Context, tenantID uuid.UUID, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	day := filter.Date
	if day == "" {
		day = time.Now().Format("2006-01-02")
	}
	var result []model.Sale
	for _, s := range r.sales {
		if s.TenantID == tenantID && s.CreatedAt.Format("2006-01-02") == day {
			result = append(result, s)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

// ── Fixture ──────────────────────────────────────────────────────────────────

type saleFixture struct {
	svc      service.SaleService
	products *fakeProductRepo
	sales    *fakeSaleRepo
	carts    *cart.Store
	access   *service.Access
	register *dto.RegisterResponse
}

func newSaleFixture(t *testing.T, allowNegativeStock bool) *saleFixture {
	t.Helper()
	operatorID := uuid.New()
	products := newFakeProductRepo()
	sales := &fakeSaleRepo{}
	carts := cart.NewStore()
	registerSvc := service.NewRegisterService(newFakeRegisterRepo(), carts)

	reg, err := registerSvc.Open(context.Background(), operatorID, dto.OpenRegisterRequest{
		OpeningAmount: decimal.NewFromInt(50000),
	})
	require.NoError(t, err)

	return &saleFixture{
		svc:      service.NewSaleService(sales, products, registerSvc, carts, service.NewProductCache(nil), nil, allowNegativeStock),
		products: products,
		sales:    sales,
		carts:    carts,
		access:   &service.Access{OperatorID: operatorID, Role: service.RoleCashier, TenantID: operatorID},
		register: reg,
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestVentaEfectivoConVuelto(t *testing.T) {
	f := newSaleFixture(t, false)
	empanada := f.products.seed(&model.Product{
		TenantID: f.access.TenantID, Name: "Empanada", Price: decimal.NewFromInt(15000), Stock: 10,
	})

	c := f.carts.Get(f.access.OperatorID)
	c.Add(empanada)
	c.Add(empanada)

	tendered := decimal.NewFromInt(50000)
	resp, err := f.svc.Commit(context.Background(), f.access, dto.CommitSaleRequest{
		RegisterID:    f.register.ID,
		PaymentMethod: model.PaymentCash,
		Tendered:      &tendered,
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(30000).Equal(resp.Total))
	require.NotNil(t, resp.Change)
	assert.True(t, decimal.NewFromInt(20000).Equal(*resp.Change))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Qty)

	// Stock decremented atomically and the cart is gone.
	assert.Equal(t, 8, f.products.products[empanada.ID].Stock)
	assert.True(t, f.carts.Get(f.access.OperatorID).Empty())
	assert.Len(t, f.sales.sales, 1)
}

func TestVentaEfectivoExacto(t *testing.T) {
	f := newSaleFixture(t, false)
	empanada := f.products.seed(&model.Product{
		TenantID: f.access.TenantID, Name: "Empanada", Price: decimal.NewFromInt(15000), Stock: 10,
	})
	f.carts.Get(f.access.OperatorID).Add(empanada)

	// Paying with the exact total yields zero change, not nil.
	tendered := decimal.NewFromInt(15000)
	resp, err := f.svc.Commit(context.Background(), f.access, dto.CommitSaleRequest{
		RegisterID:    f.register.ID,
		PaymentMethod: model.PaymentCash,
		Tendered:      &tendered,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Change)
	assert.True(t, resp.Change.IsZero())
}

func TestVentaEfectivoInsuficiente(t *testing.T) {
	f := newSaleFixture(t, false)
	empanada := f.products.seed(&model.Product{
		TenantID: f.access.TenantID, Name: "Empanada", Price: decimal.NewFromInt(15000), Stock: 10,
	})
	f.carts.Get(f.access.OperatorID).Add(empanada)

	tendered := decimal.NewFromInt(10000)
	_, err := f.svc.Commit(context.Background(), f.access, dto.CommitSaleRequest{
		RegisterID:    f.register.ID,
		PaymentMethod: model.PaymentCash,
		Tendered:      &tendered,
	})
	var pErr *apierror.InsufficientPaymentError
	require.ErrorAs(t, err, &pErr)
	assert.True(t, decimal.NewFromInt(5000).Equal(pErr.Shortfall))

	// Nothing moved: stock intact, cart intact, no sale row.
	assert.Equal(t, 10, f.products.products[empanada.ID].Stock)
	assert.False(t, f.carts.Get(f.access.OperatorID).Empty())
	assert.Empty(t, f.sales.sales)
}

func TestVentaEfectivoSinMontoRecibido(t *testing.T) {
	f := newSaleFixture(t, false)
	p := f.products.seed(&model.Product{
		TenantID: f.access.TenantID, Name: "Café", Price: decimal.NewFromInt(2000), Stock: 5,
	})
	f.carts.Get(f.access.OperatorID).Add(p)

	_, err := f.svc.Commit(context.Background(), f.access, dto.CommitSaleRequest{
		RegisterID:    f.register.ID,
		PaymentMethod: model.PaymentCash,
	})
	var vErr *apierror.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestVentaTarjetaSinVuelto(t *testing.T) {
	f := newSaleFixture(t, false)
	p := f.products.seed(&model.Product{
		TenantID: f.access.TenantID, Name: "Café", Price: decimal.NewFromInt(2000), Stock: 5,
	})
	f.carts.Get(f.access.OperatorID).Add(p)

	resp, err := f.svc.Commit(context.Background(), f.access, dto.CommitSaleRequest{
		RegisterID:    f.register.ID,
		PaymentMethod: model.PaymentCard,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Tendered)
	assert.Nil(t, resp.Change)
	assert.Equal(t, 4, f.products.products[p.ID].Stock)
}

func TestVentaCarritoVacio(t *testing.T) {
	f := newSaleFixture(t, false)

	_, err := f.svc.Commit(context.Background(), f.access, dto.CommitSaleRequest{
		RegisterID:    f.register.ID,
		PaymentMethod: model.PaymentCard,
	})
	var vErr *apierror.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestVentaSinCajaAbierta(t *testing.T) {
	f := newSaleFixture(t, false)
	// A register id that is not the operator's open session.
	_, err := f.svc.Commit(context.Background(), f.access, dto.CommitSaleRequest{
		RegisterID:    uuid.NewString(),
		PaymentMethod: model.PaymentCard,
	})
	assert.ErrorIs(t, err, apierror.ErrRegisterClosed)
}

func TestVentaStockInsuficienteAborta(t *testing.T) {
	f := newSaleFixture(t, false)
	p := f.products.seed(&model.Product{
		TenantID: f.access.TenantID, Name: "Alfajor", Price: decimal.NewFromInt(1000), Stock: 1,
	})
	c := f.carts.Get(f.access.OperatorID)
	c.Add(p)
	c.Add(p) // qty 2, stock 1

	_, err := f.svc.Commit(context.Background(), f.access, dto.CommitSaleRequest{
		RegisterID:    f.register.ID,
		PaymentMethod: model.PaymentCard,
	})
	var vErr *apierror.ValidationError
	require.ErrorAs(t, err, &vErr)

	// The cart survives a failed commit so the operator can correct it.
	assert.False(t, f.carts.Get(f.access.OperatorID).Empty())
}

func TestVentaStockNegativoPermitido(t *testing.T) {
	f := newSaleFixture(t, true)
	p := f.products.seed(&model.Product{
		TenantID: f.access.TenantID, Name: "Alfajor", Price: decimal.NewFromInt(1000), Stock: 1,
	})
	c := f.carts.Get(f.access.OperatorID)
	c.Add(p)
	c.Add(p)

	_, err := f.svc.Commit(context.Background(), f.access, dto.CommitSaleRequest{
		RegisterID:    f.register.ID,
		PaymentMethod: model.PaymentCard,
	})
	require.NoError(t, err)
	assert.Equal(t, -1, f.products.products[p.ID].Stock)
}

func TestVentaPrecioCongeladoEnCarrito(t *testing.T) {
	f := newSaleFixture(t, false)
	p := f.products.seed(&model.Product{
		TenantID: f.access.TenantID, Name: "Café", Price: decimal.NewFromInt(2000), Stock: 5,
	})
	f.carts.Get(f.access.OperatorID).Add(p)

	// Price changes after the item was added; the sale keeps the snapshot.
	p.Price = decimal.NewFromInt(9999)

	resp, err := f.svc.Commit(context.Background(), f.access, dto.CommitSaleRequest{
		RegisterID:    f.register.ID,
		PaymentMethod: model.PaymentCard,
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2000).Equal(resp.Total))
}

func TestListarVentasDelDia(t *testing.T) {
	f := newSaleFixture(t, false)
	p := f.products.seed(&model.Product{
		TenantID: f.access.TenantID, Name: "Café", Price: decimal.NewFromInt(2000), Stock: 5,
	})
	f.carts.Get(f.access.OperatorID).Add(p)
	_, err := f.svc.Commit(context.Background(), f.access, dto.CommitSaleRequest{
		RegisterID:    f.register.ID,
		PaymentMethod: model.PaymentCard,
	})
	require.NoError(t, err)

	resp, err := f.svc.List(context.Background(), f.access, dto.SaleFilter{Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, model.PaymentCard, resp.Data[0].PaymentMethod)
}

func TestListarVentasFechaInvalida(t *testing.T) {
	f := newSaleFixture(t, false)

	_, err := f.svc.List(context.Background(), f.access, dto.SaleFilter{Date: "31-12-2025", Page: 1, Limit: 50})
	var vErr *apierror.ValidationError
	assert.ErrorAs(t, err, &vErr)
}
