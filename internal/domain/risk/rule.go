package risk

// Label is the classifier's verdict for a feature vector.
type Label string

const (
	LabelLegitimate Label = "legitimate"
	LabelFraudulent Label = "fraudulent"
)

// Factor names an individual risk signal evaluated during a decision.
type Factor string

const (
	FactorClassifier           Factor = "classifier"
	FactorStatisticalSuspicion Factor = "statistical_suspicion"
	FactorHighFrequency        Factor = "high_frequency"
	FactorImpossibleTravel     Factor = "impossible_travel"
	FactorUnusualPattern       Factor = "unusual_pattern"

	// First-purchase factors, evaluated when the user has no history.
	FactorHighAmount  Factor = "high_amount"
	FactorUnusualHour Factor = "unusual_hour"
)

// MinRiskFactors is how many independent factors must fire before an
// established user's purchase is marked fraudulent. A single firing factor is
// treated as noise.
const MinRiskFactors = 2

// RuleResult records the outcome of one factor evaluation.
type RuleResult struct {
	Factor Factor `json:"factor"`
	Fired  bool   `json:"fired"`
	Reason string `json:"reason,omitempty"`
}

// CountFired returns how many factors fired.
func CountFired(results []RuleResult) int {
	n := 0
	for _, r := range results {
		if r.Fired {
			n++
		}
	}
	return n
}

// Fraudulent reports whether enough factors fired to mark the purchase.
func Fraudulent(results []RuleResult) bool {
	return CountFired(results) >= MinRiskFactors
}

// FiredFactors returns the names of the factors that fired, in evaluation order.
func FiredFactors(results []RuleResult) []Factor {
	var fired []Factor
	for _, r := range results {
		if r.Fired {
			fired = append(fired, r.Factor)
		}
	}
	return fired
}
