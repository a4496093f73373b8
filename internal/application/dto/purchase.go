package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"transaction-risk-engine/internal/domain/purchase"
	"transaction-risk-engine/internal/domain/risk"
)

// CreatePurchaseRequest is the payload for processing a new purchase. The
// amount travels as a string so money never passes through a float.
type CreatePurchaseRequest struct {
	UserID       int64  `json:"user_id"`
	Amount       string `json:"amount"`
	MerchantName string `json:"merchant_name"`
	CardID       string `json:"card_id"`
}

// ToPurchase converts the request into a domain purchase. The id and
// timestamp are assigned by the processing flow.
func (r CreatePurchaseRequest) ToPurchase() (*purchase.Purchase, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
	}

	return &purchase.Purchase{
		UserID:       r.UserID,
		Amount:       amount,
		MerchantName: r.MerchantName,
		CardID:       r.CardID,
	}, nil
}

// AnalyzePurchaseRequest is the payload for a standalone risk analysis that
// does not record the purchase. The caller supplies the timestamp.
type AnalyzePurchaseRequest struct {
	PurchaseID   int64     `json:"purchase_id"`
	UserID       int64     `json:"user_id"`
	Amount       string    `json:"amount"`
	MerchantName string    `json:"merchant_name"`
	CardID       string    `json:"card_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// ToPurchase converts the request into a domain purchase. A zero timestamp
// defaults to now.
func (r AnalyzePurchaseRequest) ToPurchase() (*purchase.Purchase, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
	}

	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	return &purchase.Purchase{
		ID:           r.PurchaseID,
		UserID:       r.UserID,
		Amount:       amount,
		MerchantName: r.MerchantName,
		CardID:       r.CardID,
		Timestamp:    ts,
	}, nil
}

// PurchaseResponse is the processed purchase together with its verdict.
type PurchaseResponse struct {
	Purchase *purchase.Purchase `json:"purchase"`
	Verdict  *risk.Verdict      `json:"verdict"`
}

// BatchAnalyzeRequest analyzes several purchases in one call.
type BatchAnalyzeRequest struct {
	Purchases []AnalyzePurchaseRequest `json:"purchases"`
}

// BatchAnalyzeResponse carries the per-purchase verdicts and a summary.
type BatchAnalyzeResponse struct {
	Verdicts []*risk.Verdict `json:"verdicts"`
	Summary  BatchSummary    `json:"summary"`
}

// BatchSummary aggregates a batch run.
type BatchSummary struct {
	Total      int `json:"total"`
	Fraudulent int `json:"fraudulent"`
	Legitimate int `json:"legitimate"`
}
