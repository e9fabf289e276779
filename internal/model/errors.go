package model

// ValidationError carries the user-facing message for an edit that was
// rejected before any state changed. The hosting layer surfaces Reason
// as a blocking dialog; Err optionally names the programmatic cause.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string { return e.Reason }

// Unwrap exposes the underlying sentinel for errors.Is checks.
func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError builds a ValidationError from a plain message.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
