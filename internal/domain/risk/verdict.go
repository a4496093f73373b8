package risk

import (
	"time"

	"github.com/google/uuid"
)

// Verdict is the immutable record of one risk decision. It captures which
// factors were evaluated, which fired, and which decision path produced it.
type Verdict struct {
	ID            uuid.UUID    `json:"id"`
	PurchaseID    int64        `json:"purchase_id"`
	UserID        int64        `json:"user_id"`
	Fraud         bool         `json:"fraud"`
	Factors       []RuleResult `json:"factors"`
	FiredCount    int          `json:"fired_count"`
	FirstPurchase bool         `json:"first_purchase"`
	Fallback      bool         `json:"fallback"`
	ProcessedAt   time.Time    `json:"processed_at"`
	LatencyMs     int64        `json:"latency_ms"`
}

// NewVerdict creates a verdict for a purchase with a fresh identifier.
func NewVerdict(purchaseID, userID int64, fraud bool, factors []RuleResult) *Verdict {
	return &Verdict{
		ID:          uuid.New(),
		PurchaseID:  purchaseID,
		UserID:      userID,
		Fraud:       fraud,
		Factors:     factors,
		FiredCount:  CountFired(factors),
		ProcessedAt: time.Now().UTC(),
	}
}

// FiredFactors returns the names of the factors that fired for this verdict.
func (v *Verdict) FiredFactors() []Factor {
	return FiredFactors(v.Factors)
}
