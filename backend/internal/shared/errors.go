// ============================================================================
// backend/internal/shared/errors.go
// Service error taxonomy shared by all components
// ============================================================================

package shared

// ErrorCode classifies a service failure for transport mapping
type ErrorCode int

const (
	CodeInvalidInput ErrorCode = iota // missing or malformed required field
	CodeConflict                      // uniqueness violation
	CodeUnauthorized                  // bad credentials
	CodeNotFound                      // no matching documents
	CodeInternal                      // unexpected storage or processing fault
)

// Error is a classified service error. Handlers map the code to an HTTP
// status; Message is safe to return to clients.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error // underlying cause, not exposed to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a classified service error
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError creates a classified service error with an underlying cause
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}
