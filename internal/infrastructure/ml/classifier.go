package ml

import (
	"fmt"
	"math"

	"transaction-risk-engine/internal/domain/risk"
)

const (
	learningRate = 0.5
	epochs       = 4000
)

// TrainingSample pairs an encoded feature vector with its known label.
type TrainingSample struct {
	Features []float64
	Label    risk.Label
}

// LogisticClassifier is a full-batch logistic regression model. Training is
// fully deterministic: weights start at zero and the gradient steps depend
// only on the corpus, so every process trains to identical parameters.
//
// The classifier is written once by Train and read-only afterwards, so
// concurrent Predict calls need no locking.
type LogisticClassifier struct {
	weights []float64
	bias    float64
	trained bool
}

// NewLogisticClassifier returns an untrained classifier.
func NewLogisticClassifier() *LogisticClassifier {
	return &LogisticClassifier{}
}

// Train fits the model on the given corpus with full-batch gradient descent.
func (c *LogisticClassifier) Train(samples []TrainingSample) error {
	if len(samples) == 0 {
		return ErrEmptyCorpus
	}

	dim := len(samples[0].Features)
	for _, s := range samples {
		if len(s.Features) != dim {
			return fmt.Errorf("%w: want %d, got %d", ErrInconsistentCorpus, dim, len(s.Features))
		}
	}

	weights := make([]float64, dim)
	bias := 0.0
	n := float64(len(samples))

	for epoch := 0; epoch < epochs; epoch++ {
		gradW := make([]float64, dim)
		gradB := 0.0

		for _, s := range samples {
			target := 0.0
			if s.Label == risk.LabelFraudulent {
				target = 1.0
			}

			errTerm := sigmoid(dot(weights, s.Features)+bias) - target
			for i, f := range s.Features {
				gradW[i] += errTerm * f
			}
			gradB += errTerm
		}

		for i := range weights {
			weights[i] -= learningRate * gradW[i] / n
		}
		bias -= learningRate * gradB / n
	}

	c.weights = weights
	c.bias = bias
	c.trained = true
	return nil
}

// Predict returns the label for an encoded feature vector.
func (c *LogisticClassifier) Predict(features []float64) (risk.Label, error) {
	if !c.trained {
		return "", ErrNotTrained
	}
	if len(features) != len(c.weights) {
		return "", fmt.Errorf("%w: want %d, got %d", ErrFeatureDimension, len(c.weights), len(features))
	}

	if sigmoid(dot(c.weights, features)+c.bias) >= 0.5 {
		return risk.LabelFraudulent, nil
	}
	return risk.LabelLegitimate, nil
}

// Trained reports whether Train has completed successfully.
func (c *LogisticClassifier) Trained() bool {
	return c.trained
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
