package model

// Standard error codes for API responses
const (
	ErrCodeNoResult       = "NO_RESULT"
	ErrCodeDuplicate      = "DUPLICATE_PRODUCT"
	ErrCodeNotInitialized = "NOT_INITIALIZED"
	ErrCodeInvalidColumn  = "INVALID_COLUMN"
)

// DomainError is a business-level error with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	// ErrNoResult is the missing-result sentinel: a select matched zero rows,
	// an update touched nothing, or an operation was given nothing to do.
	// Callers distinguish it from an empty-but-successful result.
	ErrNoResult = NewDomainError(ErrCodeNoResult, "No matching rows")

	// ErrDuplicate marks a uniqueness violation on insert.
	ErrDuplicate = NewDomainError(ErrCodeDuplicate, "Product already exists")

	// ErrNotInitialized is returned when an operation runs before the
	// database has been initialized for this session.
	ErrNotInitialized = NewDomainError(ErrCodeNotInitialized, "Database has not been initialized")
)
