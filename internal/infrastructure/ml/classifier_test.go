package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transaction-risk-engine/internal/domain/risk"
)

func TestTrainRejectsBadCorpora(t *testing.T) {
	c := NewLogisticClassifier()

	assert.ErrorIs(t, c.Train(nil), ErrEmptyCorpus)
	assert.False(t, c.Trained())

	err := c.Train([]TrainingSample{
		{Features: []float64{0.1, 0.2}, Label: risk.LabelLegitimate},
		{Features: []float64{0.1}, Label: risk.LabelFraudulent},
	})
	assert.ErrorIs(t, err, ErrInconsistentCorpus)
}

func TestPredictRequiresTraining(t *testing.T) {
	c := NewLogisticClassifier()

	_, err := c.Predict([]float64{0.1, 0.5, 0.1})
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestPredictRejectsWrongDimension(t *testing.T) {
	enc := NewEncoder(10000, false)
	c, err := NewTrainedClassifier(enc)
	require.NoError(t, err)

	_, err = c.Predict([]float64{0.1, 0.5})
	assert.ErrorIs(t, err, ErrFeatureDimension)
}

func TestSeedCorpusSeparatesFrequencyExtremes(t *testing.T) {
	enc := NewEncoder(10000, false)
	c, err := NewTrainedClassifier(enc)
	require.NoError(t, err)
	require.True(t, c.Trained())

	// Rapid-fire night spending matches the fraudulent cluster.
	label, err := c.Predict(enc.EncodeValues(100, 3, 0.95, 1.0))
	require.NoError(t, err)
	assert.Equal(t, risk.LabelFraudulent, label)

	// Occasional daytime spending matches the legitimate cluster.
	label, err = c.Predict(enc.EncodeValues(100, 14, 0.1, 0.0))
	require.NoError(t, err)
	assert.Equal(t, risk.LabelLegitimate, label)
}

func TestTrainingIsDeterministic(t *testing.T) {
	enc := NewEncoder(10000, false)

	a, err := NewTrainedClassifier(enc)
	require.NoError(t, err)
	b, err := NewTrainedClassifier(enc)
	require.NoError(t, err)

	assert.Equal(t, a.weights, b.weights)
	assert.Equal(t, a.bias, b.bias)

	for freq := 0.0; freq <= 1.0; freq += 0.1 {
		features := enc.EncodeValues(1000, 12, freq, 0.5)
		la, err := a.Predict(features)
		require.NoError(t, err)
		lb, err := b.Predict(features)
		require.NoError(t, err)
		assert.Equal(t, la, lb)
	}
}

func TestSeedCorpusWithPatternFeature(t *testing.T) {
	enc := NewEncoder(10000, true)
	c, err := NewTrainedClassifier(enc)
	require.NoError(t, err)

	label, err := c.Predict(enc.EncodeValues(100, 3, 0.95, 1.0))
	require.NoError(t, err)
	assert.Equal(t, risk.LabelFraudulent, label)
}
