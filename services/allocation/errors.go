package allocation

import "fmt"

// ValidationError is a local, pre-submit rejection. It never reaches the
// network and leaves the session exactly as it was.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{
		Code:    "validationError",
		Message: msg,
	}
}

// SessionNotFoundError is returned when a session has expired or was never
// opened.
type SessionNotFoundError struct {
	SessionID string
}

func (e *SessionNotFoundError) Error() string {
	return "payment session not found or expired: " + e.SessionID
}
