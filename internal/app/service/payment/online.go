package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatflowers/payfacade/internal/models"
	"github.com/fatflowers/payfacade/pkg/logctx"
)

func (s *Service) InitiateOnlinePayment(ctx context.Context, req *OnlinePaymentRequest) (*InitiateResult, error) {
	if req == nil {
		return nil, &ValidationError{Violations: nilRequestViolation}
	}
	return s.initiate(ctx, req, req, "")
}

func (s *Service) InitiateOnlinePaymentV2(ctx context.Context, req *OnlinePaymentRequestV2) (*InitiateResult, error) {
	if req == nil {
		return nil, &ValidationError{Violations: nilRequestViolation}
	}
	return s.initiate(ctx, req, &req.OnlinePaymentRequest, req.RequestorType)
}

// initiate runs insert -> gateway -> update strictly in that order.
// There is no compensation: a failed update leaves the record Initiated while a gateway session exists.
func (s *Service) initiate(ctx context.Context, validated any, req *OnlinePaymentRequest, requestorType string) (*InitiateResult, error) {
	const op = models.PaymentOperationInitiate
	log := logctx.FromCtx(ctx, s.log).With("operation", op, "reference", req.Reference)

	if err := s.validate(validated); err != nil {
		s.metrics.CountOutcome(string(op), outcomeValidation)
		log.Infow("online payment request rejected", "err", err)
		return nil, err
	}

	// 1. ledger insert
	if err := checkCancelled(ctx, "ledger insert"); err != nil {
		return nil, err
	}
	start := time.Now()
	externalID, err := s.ledger.InsertPayment(ctx, toInsertPaymentRequest(req, requestorType))
	s.metrics.ObserveStep(string(op), "ledger_insert", start)
	if err == nil && strings.TrimSpace(externalID) == "" {
		err = ErrInvalidLedgerResponse
	}
	if err != nil {
		log.Errorw("failed to insert payment record", "err", err)
		s.metrics.CountOutcome(string(op), outcomeServiceError)
		return nil, newServiceError("failed to insert payment record", err)
	}
	log = log.With("external_payment_id", externalID)
	s.record(ctx, &models.PaymentEventLog{
		ExternalPaymentID: externalID,
		Operation:         op,
		Step:              models.PaymentEventStepLedgerInserted,
		Status:            "Initiated",
	})

	// 2. gateway session
	if err := checkCancelled(ctx, "gateway initiate"); err != nil {
		log.Warnw("online payment abandoned after ledger insert", "err", err)
		return nil, err
	}
	start = time.Now()
	gwRes, err := s.gateway.InitiatePayment(ctx, toGatewayRequest(req, s.buildReturnURL(externalID)))
	s.metrics.ObserveStep(string(op), "gateway_initiate", start)
	if err == nil && (gwRes == nil || gwRes.PaymentID == "") {
		err = ErrInvalidGatewayResponse
	}
	if err != nil {
		log.Errorw("failed to initiate gateway payment", "err", err)
		s.metrics.CountOutcome(string(op), outcomeServiceError)
		s.record(ctx, &models.PaymentEventLog{
			ExternalPaymentID: externalID,
			Operation:         op,
			Step:              models.PaymentEventStepFailed,
			Error:             errPtr(err),
		})
		return nil, newServiceError("failed to initiate payment with the gateway", err)
	}
	log = log.With("gateway_payment_id", gwRes.PaymentID)
	s.record(ctx, &models.PaymentEventLog{
		ExternalPaymentID: externalID,
		GatewayPaymentID:  gwRes.PaymentID,
		Operation:         op,
		Step:              models.PaymentEventStepGatewayCreated,
	})

	// 3. attach the gateway id
	err = checkCancelled(ctx, "ledger update")
	if err == nil {
		start = time.Now()
		err = s.ledger.UpdatePayment(ctx, externalID, toInProgressUpdate(req, externalID, gwRes.PaymentID))
		s.metrics.ObserveStep(string(op), "ledger_update", start)
	}
	if err != nil {
		log.Errorw("ledger record desynchronised: gateway session created but record left Initiated without gateway id", "err", err)
		s.metrics.CountOutcome(string(op), outcomeDesynchronised)
		s.record(ctx, &models.PaymentEventLog{
			ExternalPaymentID: externalID,
			GatewayPaymentID:  gwRes.PaymentID,
			Operation:         op,
			Step:              models.PaymentEventStepDesynchronised,
			Status:            "Initiated",
			Error:             errPtr(err),
		})
		return nil, newServiceError("failed to update payment record", err)
	}
	s.record(ctx, &models.PaymentEventLog{
		ExternalPaymentID: externalID,
		GatewayPaymentID:  gwRes.PaymentID,
		Operation:         op,
		Step:              models.PaymentEventStepLedgerUpdated,
		Status:            "InProgress",
	})

	res := &InitiateResult{ExternalPaymentID: externalID, GatewayPaymentID: gwRes.PaymentID, NextURL: gwRes.NextURL()}
	if res.NextURL == "" {
		log.Warnw("gateway returned no hosted page url")
		s.metrics.CountOutcome(string(op), outcomeNoNextURL)
		return res, nil
	}
	s.metrics.CountOutcome(string(op), outcomeOK)
	log.Infow("online payment initiated")
	return res, nil
}

// CompleteOnlinePayment reconciles the gateway outcome back into the ledger.
func (s *Service) CompleteOnlinePayment(ctx context.Context, externalPaymentID string) (*CompletionResult, error) {
	const op = models.PaymentOperationComplete
	log := logctx.FromCtx(ctx, s.log).With("operation", op, "external_payment_id", externalPaymentID)

	if strings.TrimSpace(externalPaymentID) == "" {
		s.metrics.CountOutcome(string(op), outcomeValidation)
		return nil, &ValidationError{Violations: missingExternalIDViolation}
	}

	if err := checkCancelled(ctx, "ledger lookup"); err != nil {
		return nil, err
	}
	start := time.Now()
	details, err := s.ledger.GetPaymentDetails(ctx, externalPaymentID)
	s.metrics.ObserveStep(string(op), "ledger_get", start)
	if err != nil {
		log.Errorw("failed to fetch payment details", "err", err)
		s.metrics.CountOutcome(string(op), outcomeServiceError)
		return nil, newServiceError("failed to retrieve payment details", err)
	}
	if details == nil || details.GovPayPaymentID == "" {
		log.Infow("payment has no gateway payment id")
		s.metrics.CountOutcome(string(op), outcomeNotFound)
		return nil, fmt.Errorf("%w: payment %s has not been initiated with the gateway", ErrPaymentStatusNotFound, externalPaymentID)
	}
	if details.ExternalPaymentID == "" {
		details.ExternalPaymentID = externalPaymentID
	}
	log = log.With("gateway_payment_id", details.GovPayPaymentID)

	if err := checkCancelled(ctx, "gateway status lookup"); err != nil {
		return nil, err
	}
	start = time.Now()
	gw, err := s.gateway.GetPaymentStatus(ctx, details.GovPayPaymentID)
	s.metrics.ObserveStep(string(op), "gateway_status", start)
	if err != nil {
		log.Errorw("failed to fetch gateway payment status", "err", err)
		s.metrics.CountOutcome(string(op), outcomeServiceError)
		return nil, newServiceError("failed to retrieve payment status", err)
	}
	if gw.Status() == "" {
		log.Warnw("gateway payment has no status")
		s.metrics.CountOutcome(string(op), outcomeNotFound)
		return nil, fmt.Errorf("%w: gateway payment %s has no status", ErrPaymentStatusNotFound, details.GovPayPaymentID)
	}

	var code, message string
	if gw.State != nil {
		code, message = gw.State.Code, gw.State.Message
	}
	status, err := MapGatewayStatus(gw.Status(), code, message)
	if err != nil {
		log.Warnw("gateway payment is not in a completable state", "gateway_status", gw.Status())
		s.metrics.CountOutcome(string(op), outcomeNotFound)
		return nil, err
	}
	s.record(ctx, &models.PaymentEventLog{
		ExternalPaymentID: externalPaymentID,
		GatewayPaymentID:  details.GovPayPaymentID,
		Operation:         op,
		Step:              models.PaymentEventStepGatewayStatus,
		Status:            string(status.Status),
	})

	if err := checkCancelled(ctx, "ledger update"); err != nil {
		return nil, err
	}
	start = time.Now()
	err = s.ledger.UpdatePayment(ctx, externalPaymentID, toCompletionUpdate(details, gw, status))
	s.metrics.ObserveStep(string(op), "ledger_update", start)
	if err != nil {
		log.Errorw("failed to update payment record with gateway outcome", "err", err, "mapped_status", status.Status)
		s.metrics.CountOutcome(string(op), outcomeServiceError)
		s.record(ctx, &models.PaymentEventLog{
			ExternalPaymentID: externalPaymentID,
			GatewayPaymentID:  details.GovPayPaymentID,
			Operation:         op,
			Step:              models.PaymentEventStepFailed,
			Status:            string(status.Status),
			Error:             errPtr(err),
		})
		return nil, newServiceError("failed to update payment record", err)
	}
	s.record(ctx, &models.PaymentEventLog{
		ExternalPaymentID: externalPaymentID,
		GatewayPaymentID:  details.GovPayPaymentID,
		Operation:         op,
		Step:              models.PaymentEventStepLedgerUpdated,
		Status:            string(status.Status),
	})

	s.metrics.CountOutcome(string(op), outcomeOK)
	log.Infow("online payment completed", "status", status.Status)
	return toCompletionResult(details, gw, status), nil
}

// IsNotFound reports whether err means the payment is not in a completable state.
func IsNotFound(err error) bool { return errors.Is(err, ErrPaymentStatusNotFound) }
