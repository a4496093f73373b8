package risk

// HistoricalProfile is the per-decision statistical summary of a user's past
// purchases. It is recomputed on every decision and never cached across calls.
// For an empty history all numeric fields are zero and the maps are nil.
type HistoricalProfile struct {
	AverageAmount       float64        `json:"average_amount"`
	StdDeviation        float64        `json:"std_deviation"`
	CommonMerchants     map[string]int `json:"common_merchants,omitempty"`
	TypicalHours        map[int]int    `json:"typical_hours,omitempty"`
	FrequencyScore      float64        `json:"frequency_score"`
	UnusualPatternScore float64        `json:"unusual_pattern_score"`
}
