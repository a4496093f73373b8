package risk_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"transaction-risk-engine/internal/domain/purchase"
	"transaction-risk-engine/internal/domain/risk"
)

func fixedClock(t time.Time) risk.Clock {
	return func() time.Time { return t }
}

func historyEntry(amount float64, ts time.Time, merchant string) purchase.Purchase {
	return purchase.Purchase{
		UserID:       1,
		Amount:       decimal.NewFromFloat(amount),
		MerchantName: merchant,
		Timestamp:    ts,
	}
}

func TestAnalyzeEmptyHistory(t *testing.T) {
	analyzer := risk.NewHistoryAnalyzer()

	profile := analyzer.Analyze(nil, purchase.Purchase{})

	assert.Zero(t, profile.AverageAmount)
	assert.Zero(t, profile.StdDeviation)
	assert.Zero(t, profile.FrequencyScore)
	assert.Zero(t, profile.UnusualPatternScore)
	assert.Nil(t, profile.CommonMerchants)
	assert.Nil(t, profile.TypicalHours)
}

func TestAnalyzeStatistics(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	analyzer := risk.NewHistoryAnalyzerWithClock(fixedClock(now))

	history := []purchase.Purchase{
		historyEntry(80, now.Add(-72*time.Hour), "Grocery Mart"),
		historyEntry(100, now.Add(-48*time.Hour), "Grocery Mart"),
		historyEntry(120, now.Add(-3*time.Hour), "Coffee Corner"),
	}

	profile := analyzer.Analyze(history, historyEntry(100, now, "Grocery Mart"))

	assert.InDelta(t, 100.0, profile.AverageAmount, 1e-9)
	assert.InDelta(t, 16.3299, profile.StdDeviation, 1e-3)
	assert.Equal(t, map[string]int{"Grocery Mart": 2, "Coffee Corner": 1}, profile.CommonMerchants)
	assert.Equal(t, 3, profile.TypicalHours[14]+profile.TypicalHours[11])
}

func TestFrequencyScoreCountsTrailingDay(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	analyzer := risk.NewHistoryAnalyzerWithClock(fixedClock(now))

	history := []purchase.Purchase{
		historyEntry(100, now.Add(-30*time.Hour), "Grocery Mart"),
		historyEntry(100, now.Add(-24*time.Hour), "Grocery Mart"), // exactly on the cutoff, excluded
		historyEntry(100, now.Add(-5*time.Hour), "Grocery Mart"),
		historyEntry(100, now.Add(-1*time.Hour), "Grocery Mart"),
	}

	profile := analyzer.Analyze(history, historyEntry(100, now, "Grocery Mart"))

	assert.InDelta(t, 2.0/24.0, profile.FrequencyScore, 1e-9)
}

func TestUnusualPatternScore(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	analyzer := risk.NewHistoryAnalyzerWithClock(fixedClock(now))

	history := []purchase.Purchase{
		historyEntry(80, now.Add(-72*time.Hour), "Grocery Mart"),
		historyEntry(100, now.Add(-48*time.Hour), "Grocery Mart"),
		historyEntry(120, now.Add(-24*time.Hour).Add(-time.Minute), "Grocery Mart"),
	}

	t.Run("everything familiar", func(t *testing.T) {
		current := historyEntry(100, now, "Grocery Mart") // hour 14, seen 3 times
		profile := analyzer.Analyze(history, current)
		assert.Zero(t, profile.UnusualPatternScore)
	})

	t.Run("everything unusual", func(t *testing.T) {
		current := historyEntry(5000, now.Add(-11*time.Hour), "Online Electronics Ltd") // hour 3
		profile := analyzer.Analyze(history, current)
		assert.InDelta(t, 1.0, profile.UnusualPatternScore, 1e-9)
	})

	t.Run("unfamiliar merchant only", func(t *testing.T) {
		current := historyEntry(100, now, "Coffee Corner")
		profile := analyzer.Analyze(history, current)
		assert.InDelta(t, 0.3, profile.UnusualPatternScore, 1e-9)
	})
}
