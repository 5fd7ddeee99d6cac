package payment

import (
	"fmt"
	"strings"

	"github.com/fatflowers/payfacade/pkg/types"
)

// Gateway error codes used when the gateway reports a failure without one.
const (
	GatewayCodeRejected         = "P0010"
	GatewayCodeCancelledService = "P0040"
	GatewayCodeProviderError    = "P0050"
)

type statusRule struct {
	status         types.PaymentStatus
	defaultCode    string
	defaultMessage string
}

// gatewayStatusRules is the only place gateway statuses are interpreted.
// Statuses absent here (created, started, submitted, ...) are not completable.
var gatewayStatusRules = map[string]statusRule{
	"success":   {status: types.PaymentStatusSuccess},
	"failed":    {status: types.PaymentStatusFailed, defaultCode: GatewayCodeRejected, defaultMessage: "Payment was not authorised"},
	"error":     {status: types.PaymentStatusError, defaultCode: GatewayCodeProviderError, defaultMessage: "Payment provider returned an error"},
	"cancelled": {status: types.PaymentStatusFailed, defaultCode: GatewayCodeCancelledService, defaultMessage: "Payment was cancelled"},
}

// ReconciledStatus is a gateway outcome translated to ledger terms.
// ErrorCode and ErrorMessage are set exactly when Status is Failed or Error.
type ReconciledStatus struct {
	Status       types.PaymentStatus
	ErrorCode    string
	ErrorMessage string
}

// MapGatewayStatus translates a raw gateway status and optional error code/message.
// Unknown or empty statuses yield ErrPaymentStatusNotFound.
func MapGatewayStatus(raw, code, message string) (ReconciledStatus, error) {
	rule, ok := gatewayStatusRules[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return ReconciledStatus{}, fmt.Errorf("%w: unmapped gateway status %q", ErrPaymentStatusNotFound, raw)
	}
	out := ReconciledStatus{Status: rule.status}
	if !rule.status.RequiresErrorDetails() {
		return out, nil
	}
	out.ErrorCode = code
	if out.ErrorCode == "" {
		out.ErrorCode = rule.defaultCode
	}
	out.ErrorMessage = message
	if out.ErrorMessage == "" {
		out.ErrorMessage = rule.defaultMessage
	}
	return out, nil
}
