package risk

import "errors"

var (
	// Construction errors
	ErrMissingHistoryReader = errors.New("decision engine requires a history reader")
	ErrMissingClassifier    = errors.New("decision engine requires a classifier")
	ErrMissingEncoder       = errors.New("decision engine requires a feature encoder")
	ErrClassifierNotTrained = errors.New("classifier has not been trained")

	// Decision errors
	ErrNilPurchase     = errors.New("purchase must not be nil")
	ErrHistoryLookup   = errors.New("history lookup failed")
	ErrVerdictNotFound = errors.New("verdict not found")
)
