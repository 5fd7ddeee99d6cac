package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fatflowers/payfacade/internal/models"
	"github.com/fatflowers/payfacade/internal/platform/govpay"
	"github.com/fatflowers/payfacade/internal/platform/ledger"
	"github.com/fatflowers/payfacade/pkg/types"
)

// OnlinePaymentRequest is the v1 body for starting a hosted-page payment.
// Amount is in pence.
type OnlinePaymentRequest struct {
	UserID         string `json:"userId" validate:"required,uuid"`
	OrganisationID string `json:"organisationId" validate:"required,uuid"`
	Reference      string `json:"reference" validate:"required,max=255"`
	Regulator      string `json:"regulator" validate:"required,regulator"`
	Amount         *int64 `json:"amount" validate:"required,gt=0"`
	Description    string `json:"description" validate:"required,max=255"`
}

// OnlinePaymentRequestV2 adds the kind of organisation paying.
type OnlinePaymentRequestV2 struct {
	OnlinePaymentRequest
	RequestorType string `json:"requestorType" validate:"required,requestor_type"`
}

type InitiateResult struct {
	ExternalPaymentID string `json:"externalPaymentId"`
	GatewayPaymentID  string `json:"gatewayPaymentId"`
	// NextURL is empty when the gateway did not hand back a hosted page.
	NextURL string `json:"nextUrl"`
}

// CompletionResult is the reconciled outcome of an online payment.
type CompletionResult struct {
	Status         types.PaymentStatus `json:"status"`
	Message        string              `json:"message,omitempty"`
	Reference      string              `json:"reference"`
	UserID         string              `json:"userId"`
	OrganisationID string              `json:"organisationId"`
	Regulator      string              `json:"regulator"`
	Amount         int64               `json:"amount"`
	Email          string              `json:"email,omitempty"`
	Description    string              `json:"description"`
	RequestorType  string              `json:"requestorType,omitempty"`
	ErrorCode      string              `json:"errorCode,omitempty"`
}

// OfflinePaymentRequest records a payment the regulator received outside the hosted page.
type OfflinePaymentRequest struct {
	UserID         string          `json:"userId" validate:"required,uuid"`
	OrganisationID string          `json:"organisationId" validate:"required,uuid"`
	Reference      string          `json:"reference" validate:"required,max=255"`
	Regulator      string          `json:"regulator" validate:"required,regulator"`
	Amount         decimal.Decimal `json:"amount" validate:"decimal_gt0"`
	PaymentDate    *time.Time      `json:"paymentDate" validate:"required"`
	Description    string          `json:"description" validate:"required,max=255"`
	Comments       string          `json:"comments" validate:"omitempty,max=500"`
}

type OfflinePaymentRequestV2 struct {
	OfflinePaymentRequest
	PaymentMethod string `json:"paymentMethod" validate:"required,payment_method"`
}

// PaymentManager is what the HTTP layer drives.
type PaymentManager interface {
	InitiateOnlinePayment(ctx context.Context, req *OnlinePaymentRequest) (*InitiateResult, error)
	InitiateOnlinePaymentV2(ctx context.Context, req *OnlinePaymentRequestV2) (*InitiateResult, error)
	CompleteOnlinePayment(ctx context.Context, externalPaymentID string) (*CompletionResult, error)
	SubmitOfflinePayment(ctx context.Context, req *OfflinePaymentRequest) error
	SubmitOfflinePaymentV2(ctx context.Context, req *OfflinePaymentRequestV2) error
}

// LedgerClient is the subset of the payments service the orchestrator needs.
type LedgerClient interface {
	InsertPayment(ctx context.Context, req *ledger.InsertPaymentRequest) (string, error)
	UpdatePayment(ctx context.Context, externalPaymentID string, req *ledger.UpdatePaymentRequest) error
	GetPaymentDetails(ctx context.Context, externalPaymentID string) (*ledger.PaymentDetails, error)
	InsertOfflinePayment(ctx context.Context, req *ledger.InsertOfflinePaymentRequest) error
}

// GatewayClient is the subset of the hosted payment provider the orchestrator needs.
type GatewayClient interface {
	InitiatePayment(ctx context.Context, req *govpay.PaymentRequest) (*govpay.PaymentResponse, error)
	GetPaymentStatus(ctx context.Context, gatewayPaymentID string) (*govpay.PaymentStatusResponse, error)
}

// EventRecorder keeps an audit trail of orchestration steps. Implementations must not block.
type EventRecorder interface {
	Record(ctx context.Context, event *models.PaymentEventLog)
}
