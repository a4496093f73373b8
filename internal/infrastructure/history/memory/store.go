package memory

import (
	"context"
	"sync"

	"transaction-risk-engine/internal/domain/purchase"
)

// Store is an in-memory history store used when Redis is unavailable and in
// tests. Histories are kept per user in append order.
type Store struct {
	mu        sync.RWMutex
	histories map[int64][]purchase.Purchase
}

// NewStore creates an empty in-memory history store.
func NewStore() *Store {
	return &Store{histories: make(map[int64][]purchase.Purchase)}
}

// Get returns a copy of the user's history, oldest first.
func (s *Store) Get(_ context.Context, userID int64) ([]purchase.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.histories[userID]
	out := make([]purchase.Purchase, len(history))
	copy(out, history)
	return out, nil
}

// Append adds a purchase to the end of the user's history.
func (s *Store) Append(_ context.Context, p purchase.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.histories[p.UserID] = append(s.histories[p.UserID], p)
	return nil
}

// Repository is an in-memory purchase repository matching the Redis one.
type Repository struct {
	mu        sync.RWMutex
	purchases map[int64]purchase.Purchase
}

// NewRepository creates an empty in-memory purchase repository.
func NewRepository() *Repository {
	return &Repository{purchases: make(map[int64]purchase.Purchase)}
}

// Save stores a processed purchase.
func (r *Repository) Save(_ context.Context, p *purchase.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.purchases[p.ID] = *p
	return nil
}

// GetByID retrieves a purchase by its identifier.
func (r *Repository) GetByID(_ context.Context, id int64) (*purchase.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.purchases[id]
	if !ok {
		return nil, purchase.ErrPurchaseNotFound
	}
	return &p, nil
}
