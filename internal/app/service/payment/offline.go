package payment

import (
	"context"
	"time"

	"github.com/fatflowers/payfacade/internal/models"
	"github.com/fatflowers/payfacade/pkg/logctx"
)

func (s *Service) SubmitOfflinePayment(ctx context.Context, req *OfflinePaymentRequest) error {
	if req == nil {
		return &ValidationError{Violations: nilRequestViolation}
	}
	return s.submitOffline(ctx, req, req, "")
}

func (s *Service) SubmitOfflinePaymentV2(ctx context.Context, req *OfflinePaymentRequestV2) error {
	if req == nil {
		return &ValidationError{Violations: nilRequestViolation}
	}
	return s.submitOffline(ctx, req, &req.OfflinePaymentRequest, req.PaymentMethod)
}

// submitOffline is a single ledger insert; the gateway is never involved.
func (s *Service) submitOffline(ctx context.Context, validated any, req *OfflinePaymentRequest, paymentMethod string) error {
	const op = models.PaymentOperationOffline
	log := logctx.FromCtx(ctx, s.log).With("operation", op, "reference", req.Reference)

	if err := s.validate(validated); err != nil {
		s.metrics.CountOutcome(string(op), outcomeValidation)
		log.Infow("offline payment request rejected", "err", err)
		return err
	}
	if err := checkCancelled(ctx, "ledger insert"); err != nil {
		return err
	}

	start := time.Now()
	err := s.ledger.InsertOfflinePayment(ctx, toInsertOfflinePaymentRequest(req, paymentMethod))
	s.metrics.ObserveStep(string(op), "ledger_insert", start)
	if err != nil {
		log.Errorw("failed to insert offline payment", "err", err)
		s.metrics.CountOutcome(string(op), outcomeServiceError)
		return newServiceError("failed to insert offline payment", err)
	}
	s.record(ctx, &models.PaymentEventLog{
		Operation: op,
		Step:      models.PaymentEventStepLedgerInserted,
		Data:      offlineEventData(req, paymentMethod),
	})
	s.metrics.CountOutcome(string(op), outcomeOK)
	log.Infow("offline payment recorded", "amount", req.Amount.String(), "payment_method", paymentMethod)
	return nil
}
