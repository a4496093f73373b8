package purchase

import "context"

// HistoryReader is the decision engine's read-only view of a user's
// transaction history. The engine never writes through it.
type HistoryReader interface {
	// Get returns the user's purchases ordered by time, oldest first.
	// A user with no history yields an empty slice, not an error.
	Get(ctx context.Context, userID int64) ([]Purchase, error)
}

// HistoryStore is the full history collaborator used by the processing flow,
// which owns the append of each processed purchase.
type HistoryStore interface {
	HistoryReader

	// Append adds a processed purchase to the end of the user's history.
	Append(ctx context.Context, p Purchase) error
}

// Repository stores processed purchases keyed by their identifier.
type Repository interface {
	// Save stores a processed purchase.
	Save(ctx context.Context, p *Purchase) error

	// GetByID retrieves a purchase by its identifier.
	GetByID(ctx context.Context, id int64) (*Purchase, error)
}
