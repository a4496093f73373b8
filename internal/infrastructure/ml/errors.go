package ml

import "errors"

var (
	ErrEmptyCorpus        = errors.New("training corpus is empty")
	ErrInconsistentCorpus = errors.New("training corpus has inconsistent feature dimensions")
	ErrNotTrained         = errors.New("classifier has not been trained")
	ErrFeatureDimension   = errors.New("feature vector dimension does not match training data")
)
