package worker

// lowstock_worker.go
// Processes jobs from QueueLowStock: after a sale commits, re-checks the
// sold products against the tenant's threshold and mails the owner about
// any that are running out.

import (
	"context"
	"encoding/json"
	"fmt"

	"tiendapos/internal/infra"
	"tiendapos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type LowStockWorker struct {
	products  repository.ProductRepository
	profiles  repository.ProfileRepository
	mailer    *infra.Mailer
	threshold int
}

func NewLowStockWorker(products repository.ProductRepository, profiles repository.ProfileRepository, mailer *infra.Mailer, threshold int) *LowStockWorker {
	return &LowStockWorker{products: products, profiles: profiles, mailer: mailer, threshold: threshold}
}

func (w *LowStockWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload LowStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("lowstock_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}

	tenantID, err := uuid.Parse(payload.TenantID)
	if err != nil {
		log.Error().Str("tenant_id", payload.TenantID).Msg("lowstock_worker: invalid tenant id")
		return nil
	}

	low, err := w.products.FindBelowStock(ctx, tenantID, w.threshold)
	if err != nil {
		return fmt.Errorf("lowstock_worker: query products: %w", err)
	}

	// Only alert about the products this sale touched; a busy store would
	// otherwise mail the owner on every sale while any product runs low.
	touched := make(map[string]bool, len(payload.ProductIDs))
	for _, id := range payload.ProductIDs {
		touched[id] = true
	}
	var lines []string
	for _, p := range low {
		if touched[p.ID.String()] {
			lines = append(lines, fmt.Sprintf("- %s: quedan %d unidades", p.Name, p.Stock))
		}
	}
	if len(lines) == 0 {
		return nil
	}

	owner, err := w.profiles.FindByID(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("lowstock_worker: find owner: %w", err)
	}

	if err := w.mailer.SendLowStockAlert(owner.Email, lines); err != nil {
		return fmt.Errorf("lowstock_worker: send mail: %w", err)
	}
	log.Info().Str("to", owner.Email).Int("products", len(lines)).Msg("lowstock_worker: alert sent")
	return nil
}
