package services

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these
// into HTTP statuses: not-found -> 404, vacant/validation -> 400,
// conflict -> 409, anything else -> 500.
var (
	ErrUnitNotFound        = errors.New("unit not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrCondominiumNotFound = errors.New("condominium not found")
	ErrUnitVacant          = errors.New("cannot record payment for vacant unit")

	// ErrConflict means the unit row changed under a concurrent recording;
	// the caller should re-read and retry the whole operation.
	ErrConflict = errors.New("unit was modified concurrently, retry the operation")
)

// ValidationError describes a rejected input. It names the offending rule so
// callers can correct the request.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(rule, message string) *ValidationError {
	return &ValidationError{Rule: rule, Message: message}
}
