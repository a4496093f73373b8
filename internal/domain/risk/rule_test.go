package risk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"transaction-risk-engine/internal/domain/risk"
)

func TestCountFired(t *testing.T) {
	results := []risk.RuleResult{
		{Factor: risk.FactorClassifier, Fired: true},
		{Factor: risk.FactorHighFrequency, Fired: false},
		{Factor: risk.FactorUnusualPattern, Fired: true},
	}

	assert.Equal(t, 2, risk.CountFired(results))
	assert.Zero(t, risk.CountFired(nil))
}

func TestFraudulentRequiresTwoFactors(t *testing.T) {
	fired := func(n int) []risk.RuleResult {
		results := make([]risk.RuleResult, 5)
		for i := range results {
			results[i] = risk.RuleResult{Factor: risk.FactorClassifier, Fired: i < n}
		}
		return results
	}

	assert.False(t, risk.Fraudulent(fired(0)))
	assert.False(t, risk.Fraudulent(fired(1)))
	assert.True(t, risk.Fraudulent(fired(2)))
	assert.True(t, risk.Fraudulent(fired(5)))
}

func TestFiredFactorsPreservesOrder(t *testing.T) {
	results := []risk.RuleResult{
		{Factor: risk.FactorClassifier, Fired: false},
		{Factor: risk.FactorStatisticalSuspicion, Fired: true},
		{Factor: risk.FactorImpossibleTravel, Fired: true},
	}

	assert.Equal(t,
		[]risk.Factor{risk.FactorStatisticalSuspicion, risk.FactorImpossibleTravel},
		risk.FiredFactors(results))
}
