package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const (
	QueueLowStock   = "jobs:lowstock"
	QueueInvitacion = "jobs:invitacion"
	maxJobAttempts  = 2
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// LowStockPayload asks the pool to re-check the given products and alert the
// tenant owner about any at or below the threshold.
type LowStockPayload struct {
	TenantID   string   `json:"tenant_id"`
	ProductIDs []string `json:"product_ids"`
}

// InvitationPayload asks the pool to send a team invitation mail.
type InvitationPayload struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	OwnerID string `json:"owner_id"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueLowStock pushes a low-stock check job to Redis.
func (d *Dispatcher) EnqueueLowStock(ctx context.Context, payload LowStockPayload) error {
	return d.enqueue(ctx, QueueLowStock, "lowstock", payload)
}

// EnqueueInvitation pushes an invitation mail job to Redis.
func (d *Dispatcher) EnqueueInvitation(ctx context.Context, payload InvitationPayload) error {
	return d.enqueue(ctx, QueueInvitacion, "invitacion", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}
