package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"transaction-risk-engine/internal/domain/purchase"
)

// HistoryStore keeps each user's transaction history in a sorted set scored
// by timestamp, so reads come back in chronological order without sorting on
// the application side.
type HistoryStore struct {
	rdb *redis.Client
}

// NewHistoryStore creates a history store on an established client.
func NewHistoryStore(client *Client) *HistoryStore {
	return &HistoryStore{rdb: client.rdb}
}

func historyKey(userID int64) string {
	return fmt.Sprintf("history:user:%d", userID)
}

// Get returns the user's full history, oldest first. A user with no history
// yields an empty slice.
func (s *HistoryStore) Get(ctx context.Context, userID int64) ([]purchase.Purchase, error) {
	members, err := s.rdb.ZRange(ctx, historyKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history for user %d: %w", userID, err)
	}

	history := make([]purchase.Purchase, 0, len(members))
	for _, member := range members {
		var p purchase.Purchase
		if err := json.Unmarshal([]byte(member), &p); err != nil {
			return nil, fmt.Errorf("decode history entry for user %d: %w", userID, err)
		}
		history = append(history, p)
	}

	return history, nil
}

// Append adds a processed purchase to the user's history.
func (s *HistoryStore) Append(ctx context.Context, p purchase.Purchase) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}

	err = s.rdb.ZAdd(ctx, historyKey(p.UserID), redis.Z{
		Score:  float64(p.Timestamp.Unix()),
		Member: payload,
	}).Err()
	if err != nil {
		return fmt.Errorf("append history for user %d: %w", p.UserID, err)
	}

	return nil
}
