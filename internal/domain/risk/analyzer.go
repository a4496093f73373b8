package risk

import (
	"math"
	"time"

	"transaction-risk-engine/internal/domain/purchase"
)

// Clock supplies the analyzer's notion of "now". The trailing-24h frequency
// score depends on wall-clock time rather than any field of its inputs, so
// tests inject a fixed clock.
type Clock func() time.Time

// HistoryAnalyzer derives a statistical profile from a user's ordered
// transaction history. It has no side effects; the profile is a pure function
// of the history, the current purchase, and the injected clock.
type HistoryAnalyzer struct {
	now Clock
}

// NewHistoryAnalyzer creates an analyzer backed by the system clock.
func NewHistoryAnalyzer() *HistoryAnalyzer {
	return &HistoryAnalyzer{now: time.Now}
}

// NewHistoryAnalyzerWithClock creates an analyzer with a caller-supplied clock.
func NewHistoryAnalyzerWithClock(clock Clock) *HistoryAnalyzer {
	if clock == nil {
		clock = time.Now
	}
	return &HistoryAnalyzer{now: clock}
}

// Analyze computes the user's historical profile relative to the current
// purchase. An empty history yields the zero-valued profile.
func (a *HistoryAnalyzer) Analyze(history []purchase.Purchase, current purchase.Purchase) HistoricalProfile {
	if len(history) == 0 {
		return HistoricalProfile{}
	}

	profile := HistoricalProfile{
		AverageAmount:   averageAmount(history),
		CommonMerchants: merchantCounts(history),
		TypicalHours:    hourCounts(history),
		FrequencyScore:  a.frequencyScore(history),
	}
	profile.StdDeviation = stdDeviation(history, profile.AverageAmount)
	profile.UnusualPatternScore = unusualPatternScore(profile, current)

	return profile
}

func averageAmount(history []purchase.Purchase) float64 {
	sum := 0.0
	for _, p := range history {
		sum += p.Amount.InexactFloat64()
	}
	return sum / float64(len(history))
}

// stdDeviation is the population standard deviation of the purchase amounts.
func stdDeviation(history []purchase.Purchase, mean float64) float64 {
	variance := 0.0
	for _, p := range history {
		diff := p.Amount.InexactFloat64() - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(history)))
}

func merchantCounts(history []purchase.Purchase) map[string]int {
	counts := make(map[string]int, len(history))
	for _, p := range history {
		counts[p.MerchantName]++
	}
	return counts
}

func hourCounts(history []purchase.Purchase) map[int]int {
	counts := make(map[int]int)
	for _, p := range history {
		counts[p.Hour()]++
	}
	return counts
}

// frequencyScore is transactions-per-hour over the trailing 24 hours,
// measured from the clock's "now" rather than the current purchase.
func (a *HistoryAnalyzer) frequencyScore(history []purchase.Purchase) float64 {
	cutoff := a.now().Add(-24 * time.Hour)

	recent := 0
	for _, p := range history {
		if p.Timestamp.After(cutoff) {
			recent++
		}
	}

	return float64(recent) / 24.0
}

// unusualPatternScore scores how far the current purchase departs from the
// user's established behavior. The three contributions are disjoint, so the
// result is always within [0, 1].
func unusualPatternScore(profile HistoricalProfile, current purchase.Purchase) float64 {
	score := 0.0

	if math.Abs(current.Amount.InexactFloat64()-profile.AverageAmount) > 2*profile.StdDeviation {
		score += 0.4
	}
	if profile.TypicalHours[current.Hour()] < 2 {
		score += 0.3
	}
	if _, known := profile.CommonMerchants[current.MerchantName]; !known {
		score += 0.3
	}

	return score
}
