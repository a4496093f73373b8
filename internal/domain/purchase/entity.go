package purchase

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase represents a single card purchase flowing through the risk engine.
// The processing flow assigns the identifier and timestamp before a decision
// is requested; the decision engine only ever writes the Fraud flag.
type Purchase struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	Amount       decimal.Decimal `json:"amount"`
	MerchantName string          `json:"merchant_name"`
	CardID       string          `json:"card_id"`
	Timestamp    time.Time       `json:"timestamp"`
	Fraud        bool            `json:"fraud"`
}

// Hour returns the purchase's hour of day (0-23).
func (p Purchase) Hour() int {
	return p.Timestamp.Hour()
}

// Validate checks the fields a risk decision depends on.
func (p Purchase) Validate() error {
	if p.UserID <= 0 {
		return ErrMissingUserID
	}
	if p.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if p.MerchantName == "" {
		return ErrMissingMerchant
	}
	if p.Timestamp.IsZero() {
		return ErrMissingTimestamp
	}
	return nil
}
