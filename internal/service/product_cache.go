package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tiendapos/internal/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const productCacheTTL = 5 * time.Minute

// ProductCache keeps the default first page of each tenant's catalog in
// Redis. It is strictly best-effort: a nil client or any Redis failure
// degrades to a database read, never to an error.
type ProductCache struct {
	rdb *redis.Client
}

func NewProductCache(rdb *redis.Client) *ProductCache {
	return &ProductCache{rdb: rdb}
}

func (c *ProductCache) key(tenantID uuid.UUID) string {
	return fmt.Sprintf("products:%s:page1", tenantID)
}

func (c *ProductCache) Get(ctx context.Context, tenantID uuid.UUID) (*dto.ProductListResponse, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, c.key(tenantID)).Bytes()
	if err != nil {
		return nil, false
	}
	var resp dto.ProductListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (c *ProductCache) Set(ctx context.Context, tenantID uuid.UUID, resp *dto.ProductListResponse) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(tenantID), raw, productCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo escribir el caché de productos")
	}
}

func (c *ProductCache) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.key(tenantID)).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar el caché de productos")
	}
}
