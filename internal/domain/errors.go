package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrInsufficientBalance = errors.New("insufficient_balance")
	ErrInvalidAsset        = errors.New("invalid_asset")
	ErrInvalidPair         = errors.New("invalid_pair")
	ErrOrderNotFound       = errors.New("order_not_found")
	ErrOrderNotCancellable = errors.New("order_not_cancellable")
	ErrUnauthorized        = errors.New("unauthorized")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
