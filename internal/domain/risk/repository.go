package risk

import (
	"context"
	"time"
)

// VerdictRepository persists decision verdicts for audit and review.
type VerdictRepository interface {
	Create(ctx context.Context, v *Verdict) error
	GetByID(ctx context.Context, id string) (*Verdict, error)
	GetByPurchaseID(ctx context.Context, purchaseID int64) (*Verdict, error)
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]Verdict, error)
	CountFraudulent(ctx context.Context, userID int64, since time.Time) (int64, error)
}
