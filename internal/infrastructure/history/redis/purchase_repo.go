package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"transaction-risk-engine/internal/domain/purchase"
)

// PurchaseRepository stores processed purchases as JSON keyed by id.
type PurchaseRepository struct {
	rdb *redis.Client
}

// NewPurchaseRepository creates a purchase repository on an established client.
func NewPurchaseRepository(client *Client) *PurchaseRepository {
	return &PurchaseRepository{rdb: client.rdb}
}

func purchaseKey(id int64) string {
	return fmt.Sprintf("purchase:%d", id)
}

// Save stores a processed purchase.
func (r *PurchaseRepository) Save(ctx context.Context, p *purchase.Purchase) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode purchase %d: %w", p.ID, err)
	}

	if err := r.rdb.Set(ctx, purchaseKey(p.ID), payload, 0).Err(); err != nil {
		return fmt.Errorf("save purchase %d: %w", p.ID, err)
	}
	return nil
}

// GetByID retrieves a purchase by its identifier.
func (r *PurchaseRepository) GetByID(ctx context.Context, id int64) (*purchase.Purchase, error) {
	payload, err := r.rdb.Get(ctx, purchaseKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, purchase.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("read purchase %d: %w", id, err)
	}

	var p purchase.Purchase
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decode purchase %d: %w", id, err)
	}
	return &p, nil
}
