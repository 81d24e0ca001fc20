package domain

// ValidationError reports unprocessable caller input. The message is stable
// and safe to surface verbatim.
type ValidationError struct {
	msg string
}

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string { return e.msg }
