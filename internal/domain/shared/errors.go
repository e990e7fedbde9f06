package shared

// DomainError is a business-rule violation with a stable machine-readable
// code. The interface layer maps codes to HTTP statuses; the message is safe
// to show to API clients.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a domain error with the given code and message
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// ErrNotFound is the sentinel repositories return when no row matches.
// Callers test for it with errors.Is.
var ErrNotFound = NewDomainError("NOT_FOUND", "Resource not found")
