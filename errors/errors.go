package errors

import "errors"

const (
	InvalidTokenError       = "Invalid token"
	MissingTokenError       = "Missing token"
	InvalidCredentials      = "Invalid credentials"
	EmailAlreadyExist       = "Email already exists"
	NotFoundError           = "Not found"
	EmailAndPasswordError   = "email and password required"
	EndBeforeStartError     = "Enddatum muss nach dem Startdatum liegen"
	NoReportDataError       = "Keine Daten zum Exportieren"
	InvalidRequestFormat    = "Invalid request format"
	InternalServerErrorText = "Internal server error"
)

var (
	ErrMissingToken       = errors.New(MissingTokenError)
	ErrInvalidToken       = errors.New(InvalidTokenError)
	ErrInvalidCredentials = errors.New(InvalidCredentials)
	ErrEmailExists        = errors.New(EmailAlreadyExist)
	ErrNotFound           = errors.New(NotFoundError)
	ErrNoReportData       = errors.New(NoReportDataError)
)

// ValidationError carries a caller-facing message for malformed input.
type ValidationError struct {
	Message string `json:"message"`
}

func (v *ValidationError) Error() string {
	return v.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
