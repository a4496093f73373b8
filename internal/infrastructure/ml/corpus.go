package ml

import "transaction-risk-engine/internal/domain/risk"

// seedExample is one labeled transaction in raw, pre-encoding form.
type seedExample struct {
	amount       float64
	hour         int
	frequency    float64
	patternScore float64
	fraud        bool
}

// seedCorpus is the fixed bootstrap corpus the classifier trains on at
// startup. It is intentionally small and weakly separable: legitimate
// transactions span normal daytime and evening spending, fraudulent ones
// share a high trailing frequency. The classifier is one factor among
// several, not the decision by itself.
var seedCorpus = []seedExample{
	{amount: 100.0, hour: 14, frequency: 0.1, patternScore: 0.0, fraud: false},
	{amount: 500.0, hour: 13, frequency: 0.2, patternScore: 0.1, fraud: false},
	{amount: 1200.0, hour: 15, frequency: 0.1, patternScore: 0.0, fraud: false},
	{amount: 800.0, hour: 23, frequency: 0.3, patternScore: 0.3, fraud: false},
	{amount: 150.0, hour: 2, frequency: 0.1, patternScore: 0.2, fraud: false},
	{amount: 1500.0, hour: 1, frequency: 0.2, patternScore: 0.3, fraud: false},
	{amount: 2000.0, hour: 13, frequency: 0.2, patternScore: 0.1, fraud: false},
	{amount: 2500.0, hour: 14, frequency: 0.3, patternScore: 0.2, fraud: false},
	{amount: 2000.0, hour: 2, frequency: 0.9, patternScore: 0.9, fraud: true},
	{amount: 1500.0, hour: 14, frequency: 0.8, patternScore: 0.7, fraud: true},
	{amount: 100.0, hour: 3, frequency: 0.95, patternScore: 1.0, fraud: true},
}

// SeedCorpus encodes the bootstrap corpus with the given encoder.
func SeedCorpus(enc *Encoder) []TrainingSample {
	samples := make([]TrainingSample, 0, len(seedCorpus))
	for _, ex := range seedCorpus {
		label := risk.LabelLegitimate
		if ex.fraud {
			label = risk.LabelFraudulent
		}
		samples = append(samples, TrainingSample{
			Features: enc.EncodeValues(ex.amount, ex.hour, ex.frequency, ex.patternScore),
			Label:    label,
		})
	}
	return samples
}

// NewTrainedClassifier builds a classifier and trains it on the bootstrap
// corpus. Callers treat an error here as fatal; the engine must not serve
// with an untrained model.
func NewTrainedClassifier(enc *Encoder) (*LogisticClassifier, error) {
	c := NewLogisticClassifier()
	if err := c.Train(SeedCorpus(enc)); err != nil {
		return nil, err
	}
	return c, nil
}
