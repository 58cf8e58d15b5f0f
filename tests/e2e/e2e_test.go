//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// There is no login endpoint: identity comes from an external provider, so
// each test seeds a profile row and mints an HS256 token with the same secret
// the server verifies against.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tiendapos/internal/config"
	"tiendapos/internal/infra"
	"tiendapos/internal/router"
	"tiendapos/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server  *httptest.Server
	db      *gorm.DB
	cfg     *config.Config
	ownerID uuid.UUID
	token   string // owner JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	// Start Postgres container
	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("tiendapos_test"),
		tcPostgres.WithUsername("tiendapos"),
		tcPostgres.WithPassword("tiendapos"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Start Redis container
	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	// Build config
	cfg := &config.Config{
		Port:              8000,
		Env:               "test",
		WorkerPoolSize:    1,
		DatabaseURL:       pgURL,
		RedisURL:          rdURL,
		IdentityJWTSecret: "test-secret-key",
		LowStockThreshold: 5,
	}

	// Connect DB (runs migrations) + Redis
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed the business owner
	ownerID := uuid.New()
	seedProfile(t, db, ownerID, fmt.Sprintf("owner-%s@e2e.test", ownerID), false)

	// Build router
	r := router.New(cfg, db, rdb, worker.NewDispatcher(rdb))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{
		server:  srv,
		db:      db,
		cfg:     cfg,
		ownerID: ownerID,
		token:   mintToken(t, cfg.IdentityJWTSecret, ownerID),
	}
}

func seedProfile(t *testing.T, db *gorm.DB, id uuid.UUID, email string, superAdmin bool) {
	t.Helper()
	err := db.Exec(`INSERT INTO profiles (id, email, business_name, currency, status, is_super_admin, created_at, updated_at)
		VALUES (?, ?, 'Almacén E2E', 'USD', 'active', ?, NOW(), NOW())
		ON CONFLICT (id) DO NOTHING`, id, email, superAdmin).Error
	require.NoError(t, err)
}

func mintToken(t *testing.T, secret string, subject uuid.UUID) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func createProduct(t *testing.T, env *testEnv, name string, price float64, stock int) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/products",
		jsonBody(t, map[string]any{"name": name, "price": price, "stock": stock}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

func openRegister(t *testing.T, env *testEnv, amount float64) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/register/open",
		jsonBody(t, map[string]any{"opening_amount": amount}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var reg struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &reg)
	return reg.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Full cycle: catalog → register → cart → checkout → history.
func TestE2E_CicloCompletoDeVenta(t *testing.T) {
	env := setupTestEnv(t)

	prodID := createProduct(t, env, "Gaseosa 500ml", 250, 20)
	regID := openRegister(t, env, 1000)

	// Add to cart and set the quantity to 3
	addResp := do(t, env.server, "POST", "/v1/cart/items",
		jsonBody(t, map[string]any{"product_id": prodID}), env.token)
	require.Equal(t, http.StatusOK, addResp.StatusCode)
	addResp.Body.Close()

	qty := 3
	setResp := do(t, env.server, "PUT", "/v1/cart/items/"+prodID,
		jsonBody(t, map[string]any{"qty": qty}), env.token)
	require.Equal(t, http.StatusOK, setResp.StatusCode)
	var cart struct {
		Total float64 `json:"total,string"`
	}
	decodeJSON(t, setResp, &cart)
	assert.Equal(t, 750.0, cart.Total)

	// Cash checkout with change
	saleResp := do(t, env.server, "POST", "/v1/sales",
		jsonBody(t, map[string]any{
			"register_id":    regID,
			"payment_method": "cash",
			"tendered":       1000.0,
		}), env.token)
	require.Equal(t, http.StatusCreated, saleResp.StatusCode)
	var sale struct {
		ID     string  `json:"id"`
		Total  float64 `json:"total,string"`
		Change float64 `json:"change,string"`
	}
	decodeJSON(t, saleResp, &sale)
	assert.Equal(t, 750.0, sale.Total)
	assert.Equal(t, 250.0, sale.Change)

	// Cart emptied, stock decremented
	cartResp := do(t, env.server, "GET", "/v1/cart", nil, env.token)
	require.Equal(t, http.StatusOK, cartResp.StatusCode)
	var cartView struct {
		Items []any `json:"items"`
	}
	decodeJSON(t, cartResp, &cartView)
	assert.Empty(t, cartView.Items)

	prodResp := do(t, env.server, "GET", "/v1/products/"+prodID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 17, prod.Stock)

	// The sale shows up in today's history
	listResp := do(t, env.server, "GET",
		fmt.Sprintf("/v1/sales?date=%s", time.Now().Format("2006-01-02")), nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Data  []struct{ ID string } `json:"data"`
		Total int64                 `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	require.Equal(t, int64(1), list.Total)
	assert.Equal(t, sale.ID, list.Data[0].ID)
}

// The partial unique index rejects a second open register for the operator.
func TestE2E_CajaDuplicadaRechazada(t *testing.T) {
	env := setupTestEnv(t)

	openRegister(t, env, 500)

	resp := do(t, env.server, "POST", "/v1/register/open",
		jsonBody(t, map[string]any{"opening_amount": 500.0}), env.token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// A sale that would drive stock negative aborts atomically: the sale is not
// recorded, stock is untouched and the cart survives for correction.
func TestE2E_StockInsuficienteAbortaVenta(t *testing.T) {
	env := setupTestEnv(t)

	prodID := createProduct(t, env, "Yerba 1kg", 4500, 1)
	regID := openRegister(t, env, 500)

	addResp := do(t, env.server, "POST", "/v1/cart/items",
		jsonBody(t, map[string]any{"product_id": prodID}), env.token)
	require.Equal(t, http.StatusOK, addResp.StatusCode)
	addResp.Body.Close()

	qty := 2
	setResp := do(t, env.server, "PUT", "/v1/cart/items/"+prodID,
		jsonBody(t, map[string]any{"qty": qty}), env.token)
	require.Equal(t, http.StatusOK, setResp.StatusCode)
	setResp.Body.Close()

	saleResp := do(t, env.server, "POST", "/v1/sales",
		jsonBody(t, map[string]any{
			"register_id":    regID,
			"payment_method": "card",
		}), env.token)
	defer saleResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, saleResp.StatusCode)

	// Stock untouched
	prodResp := do(t, env.server, "GET", "/v1/products/"+prodID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 1, prod.Stock)

	// Cart still holds the line
	cartResp := do(t, env.server, "GET", "/v1/cart", nil, env.token)
	require.Equal(t, http.StatusOK, cartResp.StatusCode)
	var cartView struct {
		Items []struct {
			Qty int `json:"qty"`
		} `json:"items"`
	}
	decodeJSON(t, cartResp, &cartView)
	require.Len(t, cartView.Items, 1)
	assert.Equal(t, 2, cartView.Items[0].Qty)

	// Nothing in the history
	listResp := do(t, env.server, "GET", "/v1/sales", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	assert.Equal(t, int64(0), list.Total)
}

// Cash below the total is rejected before anything is written.
func TestE2E_EfectivoInsuficiente(t *testing.T) {
	env := setupTestEnv(t)

	prodID := createProduct(t, env, "Pan Lactal", 1800, 5)
	regID := openRegister(t, env, 500)

	addResp := do(t, env.server, "POST", "/v1/cart/items",
		jsonBody(t, map[string]any{"product_id": prodID}), env.token)
	require.Equal(t, http.StatusOK, addResp.StatusCode)
	addResp.Body.Close()

	saleResp := do(t, env.server, "POST", "/v1/sales",
		jsonBody(t, map[string]any{
			"register_id":    regID,
			"payment_method": "cash",
			"tendered":       1000.0,
		}), env.token)
	require.Equal(t, http.StatusBadRequest, saleResp.StatusCode)
	var body struct {
		Detail string `json:"detail"`
	}
	decodeJSON(t, saleResp, &body)
	assert.Contains(t, body.Detail, "insuficiente")
}

// A suspended tenant is locked out of every operation until reactivated by
// the platform super admin.
func TestE2E_SuspensionBloqueaOperaciones(t *testing.T) {
	env := setupTestEnv(t)

	// Seed the platform admin alongside the owner
	adminID := uuid.New()
	seedProfile(t, env.db, adminID, "plataforma@e2e.test", true)
	adminToken := mintToken(t, env.cfg.IdentityJWTSecret, adminID)

	// Owner works normally before suspension
	createProduct(t, env, "Fideos 500g", 900, 10)

	suspendResp := do(t, env.server, "PUT", "/v1/admin/tenants/"+env.ownerID.String()+"/status",
		jsonBody(t, map[string]any{"status": "suspended"}), adminToken)
	require.Equal(t, http.StatusNoContent, suspendResp.StatusCode)
	suspendResp.Body.Close()

	blockedResp := do(t, env.server, "GET", "/v1/products", nil, env.token)
	require.Equal(t, http.StatusForbidden, blockedResp.StatusCode)
	var blocked struct {
		Detail string `json:"detail"`
	}
	decodeJSON(t, blockedResp, &blocked)
	assert.Contains(t, blocked.Detail, "suspendida")

	// Reactivation restores access
	reactivateResp := do(t, env.server, "PUT", "/v1/admin/tenants/"+env.ownerID.String()+"/status",
		jsonBody(t, map[string]any{"status": "active"}), adminToken)
	require.Equal(t, http.StatusNoContent, reactivateResp.StatusCode)
	reactivateResp.Body.Close()

	okResp := do(t, env.server, "GET", "/v1/products", nil, env.token)
	defer okResp.Body.Close()
	assert.Equal(t, http.StatusOK, okResp.StatusCode)
}

// An employee added to a team operates inside the owner's tenant: the catalog
// is shared and the cashier role cannot read the sales history.
func TestE2E_EquipoCompartidoYRoles(t *testing.T) {
	env := setupTestEnv(t)

	prodID := createProduct(t, env, "Azúcar 1kg", 1200, 8)

	cashierID := uuid.New()
	seedProfile(t, env.db, cashierID, "cajero@e2e.test", false)
	cashierToken := mintToken(t, env.cfg.IdentityJWTSecret, cashierID)

	addResp := do(t, env.server, "POST", "/v1/team",
		jsonBody(t, map[string]any{"email": "cajero@e2e.test", "role": "cashier"}), env.token)
	require.Equal(t, http.StatusCreated, addResp.StatusCode)
	addResp.Body.Close()

	// The cashier sees the owner's catalog
	listResp := do(t, env.server, "GET", "/v1/products", nil, cashierToken)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	decodeJSON(t, listResp, &list)
	require.Len(t, list.Data, 1)
	assert.Equal(t, prodID, list.Data[0].ID)

	// But cannot read the sales history
	histResp := do(t, env.server, "GET", "/v1/sales", nil, cashierToken)
	defer histResp.Body.Close()
	assert.Equal(t, http.StatusForbidden, histResp.StatusCode)
}

func TestE2E_HealthReportaColas(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health struct {
		OK    bool             `json:"ok"`
		DB    string           `json:"db"`
		Redis string           `json:"redis"`
		DLQ   map[string]int64 `json:"dlq"`
	}
	decodeJSON(t, resp, &health)
	assert.True(t, health.OK)
	assert.Equal(t, "connected", health.DB)
	assert.Equal(t, "connected", health.Redis)
	// Fresh deployment: both dead-letter queues exist and are empty.
	assert.Zero(t, health.DLQ["jobs:lowstock"])
	assert.Zero(t, health.DLQ["jobs:invitacion"])
}
