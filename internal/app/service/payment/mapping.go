package payment

import (
	"encoding/json"

	"github.com/samber/lo"
	"gorm.io/datatypes"

	"github.com/fatflowers/payfacade/internal/platform/govpay"
	"github.com/fatflowers/payfacade/internal/platform/ledger"
	"github.com/fatflowers/payfacade/pkg/types"
)

func toInsertPaymentRequest(req *OnlinePaymentRequest, requestorType string) *ledger.InsertPaymentRequest {
	return &ledger.InsertPaymentRequest{
		UserID:           req.UserID,
		OrganisationID:   req.OrganisationID,
		ReferenceNumber:  req.Reference,
		Regulator:        req.Regulator,
		Amount:           lo.FromPtr(req.Amount),
		ReasonForPayment: req.Description,
		RequestorType:    requestorType,
		Status:           types.PaymentStatusInitiated,
	}
}

func toGatewayRequest(req *OnlinePaymentRequest, returnURL string) *govpay.PaymentRequest {
	return &govpay.PaymentRequest{
		Amount:      lo.FromPtr(req.Amount),
		Reference:   req.Reference,
		Description: req.Description,
		ReturnURL:   returnURL,
		Metadata: govpay.PaymentMetadata{
			UserID:         req.UserID,
			OrganisationID: req.OrganisationID,
			Regulator:      req.Regulator,
		},
	}
}

func toInProgressUpdate(req *OnlinePaymentRequest, externalPaymentID, gatewayPaymentID string) *ledger.UpdatePaymentRequest {
	return &ledger.UpdatePaymentRequest{
		ExternalPaymentID:       externalPaymentID,
		GovPayPaymentID:         gatewayPaymentID,
		UpdatedByUserID:         req.UserID,
		UpdatedByOrganisationID: req.OrganisationID,
		Reference:               req.Reference,
		Status:                  types.PaymentStatusInProgress,
	}
}

func toCompletionUpdate(details *ledger.PaymentDetails, gw *govpay.PaymentStatusResponse, status ReconciledStatus) *ledger.UpdatePaymentRequest {
	return &ledger.UpdatePaymentRequest{
		ExternalPaymentID:       details.ExternalPaymentID,
		GovPayPaymentID:         details.GovPayPaymentID,
		UpdatedByUserID:         details.UpdatedByUserID,
		UpdatedByOrganisationID: details.UpdatedByOrganisationID,
		Reference:               gw.Reference,
		Status:                  status.Status,
		ErrorCode:               status.ErrorCode,
		ErrorMessage:            status.ErrorMessage,
	}
}

func toCompletionResult(details *ledger.PaymentDetails, gw *govpay.PaymentStatusResponse, status ReconciledStatus) *CompletionResult {
	var message string
	if gw.State != nil {
		message = gw.State.Message
	}
	return &CompletionResult{
		Status:         status.Status,
		Message:        message,
		Reference:      gw.Reference,
		UserID:         details.UpdatedByUserID,
		OrganisationID: details.UpdatedByOrganisationID,
		Regulator:      details.Regulator,
		Amount:         details.Amount,
		Email:          gw.Email,
		Description:    details.Description,
		RequestorType:  details.RequestorType,
		ErrorCode:      status.ErrorCode,
	}
}

func toInsertOfflinePaymentRequest(req *OfflinePaymentRequest, paymentMethod string) *ledger.InsertOfflinePaymentRequest {
	return &ledger.InsertOfflinePaymentRequest{
		UserID:         req.UserID,
		OrganisationID: req.OrganisationID,
		Reference:      req.Reference,
		Regulator:      req.Regulator,
		Amount:         req.Amount,
		PaymentDate:    lo.FromPtr(req.PaymentDate),
		Description:    req.Description,
		Comments:       req.Comments,
		PaymentMethod:  paymentMethod,
	}
}

// offlineEventData keeps the submitted figures on the audit trail, since offline payments have no external id yet.
func offlineEventData(req *OfflinePaymentRequest, paymentMethod string) datatypes.JSON {
	b, err := json.Marshal(map[string]any{
		"reference":     req.Reference,
		"regulator":     req.Regulator,
		"amount":        req.Amount.String(),
		"paymentMethod": paymentMethod,
	})
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
