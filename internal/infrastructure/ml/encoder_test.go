package ml

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"transaction-risk-engine/internal/domain/purchase"
	"transaction-risk-engine/internal/domain/risk"
)

func TestEncodeValues(t *testing.T) {
	enc := NewEncoder(10000, false)

	features := enc.EncodeValues(2500, 12, 0.25, 0.9)

	assert.Equal(t, []float64{0.25, 0.5, 0.25}, features)
}

func TestEncodeClipsLargeAmounts(t *testing.T) {
	enc := NewEncoder(10000, false)

	features := enc.EncodeValues(50000, 0, 0, 0)

	assert.Equal(t, 1.0, features[0])
}

func TestEncodePatternFeature(t *testing.T) {
	enc := NewEncoder(10000, true)

	features := enc.EncodeValues(1000, 6, 0.1, 0.7)

	assert.Len(t, features, 4)
	assert.Equal(t, 0.7, features[3])
	assert.Equal(t, 4, enc.FeatureCount())
	assert.Equal(t, 3, NewEncoder(10000, false).FeatureCount())
}

func TestEncoderDefaultsOnInvalidMax(t *testing.T) {
	enc := NewEncoder(0, false)

	features := enc.EncodeValues(DefaultMaxAssumedAmount, 0, 0, 0)

	assert.Equal(t, 1.0, features[0])
}

func TestEncodeMatchesEncodeValues(t *testing.T) {
	enc := NewEncoder(10000, true)

	p := purchase.Purchase{
		Amount:    decimal.NewFromInt(2500),
		Timestamp: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
	}
	profile := risk.HistoricalProfile{FrequencyScore: 0.25, UnusualPatternScore: 0.6}

	assert.Equal(t, enc.EncodeValues(2500, 12, 0.25, 0.6), enc.Encode(p, profile))
}
