package purchase

import "errors"

var (
	// Validation errors
	ErrMissingUserID    = errors.New("purchase is missing a user id")
	ErrNegativeAmount   = errors.New("purchase amount must not be negative")
	ErrMissingMerchant  = errors.New("purchase is missing a merchant name")
	ErrMissingTimestamp = errors.New("purchase is missing a timestamp")

	// Storage errors
	ErrPurchaseNotFound = errors.New("purchase not found")
)
