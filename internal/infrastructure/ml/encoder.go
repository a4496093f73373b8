package ml

import (
	"transaction-risk-engine/internal/domain/purchase"
	"transaction-risk-engine/internal/domain/risk"
)

// DefaultMaxAssumedAmount caps the amount feature. Anything above it encodes
// to 1.0 rather than stretching the feature range.
const DefaultMaxAssumedAmount = 10000.0

// Encoder maps purchases to feature vectors. The same encoder instance must
// produce both the training corpus and the serving vectors; its settings are
// fixed at construction so the two cannot drift apart.
type Encoder struct {
	maxAmount      float64
	includePattern bool
}

// NewEncoder creates an encoder. maxAmount values at or below zero fall back
// to the default. includePattern adds the historical unusual-pattern score as
// a fourth feature.
func NewEncoder(maxAmount float64, includePattern bool) *Encoder {
	if maxAmount <= 0 {
		maxAmount = DefaultMaxAssumedAmount
	}
	return &Encoder{maxAmount: maxAmount, includePattern: includePattern}
}

// Encode produces the feature vector for a purchase and its profile.
func (e *Encoder) Encode(p purchase.Purchase, profile risk.HistoricalProfile) []float64 {
	return e.EncodeValues(p.Amount.InexactFloat64(), p.Hour(), profile.FrequencyScore, profile.UnusualPatternScore)
}

// EncodeValues is the raw encoding: normalized amount, normalized hour, and
// the frequency score as-is, plus the pattern score when enabled. Every
// feature lands in [0, 1] for typical inputs.
func (e *Encoder) EncodeValues(amount float64, hour int, frequency, patternScore float64) []float64 {
	normalizedAmount := amount / e.maxAmount
	if normalizedAmount > 1.0 {
		normalizedAmount = 1.0
	}

	features := []float64{
		normalizedAmount,
		float64(hour) / 24.0,
		frequency,
	}
	if e.includePattern {
		features = append(features, patternScore)
	}
	return features
}

// FeatureCount returns the dimensionality of the vectors this encoder emits.
func (e *Encoder) FeatureCount() int {
	if e.includePattern {
		return 4
	}
	return 3
}
