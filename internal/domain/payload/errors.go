package payload

import "errors"

// ErrValidation marks operator input rejected before any network call.
var ErrValidation = errors.New("validation failed")

// ValidationError describes why a form field could not be turned into a
// request payload. Message is shown to the operator as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is lets callers match any ValidationError with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
