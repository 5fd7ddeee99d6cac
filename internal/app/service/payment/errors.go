package payment

import (
	"errors"
	"strings"

	"github.com/fatflowers/payfacade/pkg/validation"
)

var (
	// ErrPaymentStatusNotFound means the payment is not in a completable state.
	ErrPaymentStatusNotFound = errors.New("payment status not found")
	// ErrInvalidGatewayResponse means the gateway answered 2xx without a usable payment id.
	ErrInvalidGatewayResponse = errors.New("invalid response from payment gateway")
	// ErrInvalidLedgerResponse means the ledger answered 2xx without an external payment id.
	ErrInvalidLedgerResponse = errors.New("invalid response from payments service")
)

// ValidationError carries every rule a request broke.
type ValidationError struct {
	Violations []validation.Violation
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(validation.Messages(e.Violations), "; ")
}

// ServiceError wraps a ledger or gateway failure behind a stable message.
type ServiceError struct {
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

func newServiceError(msg string, err error) *ServiceError {
	return &ServiceError{Message: msg, Err: err}
}

var (
	nilRequestViolation        = []validation.Violation{{Field: "body", Message: "request body is required"}}
	missingExternalIDViolation = []validation.Violation{{Field: "externalPaymentId", Message: "externalPaymentId is required"}}
)
