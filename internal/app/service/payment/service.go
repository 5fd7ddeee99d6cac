package payment

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fatflowers/payfacade/internal/models"
	"github.com/fatflowers/payfacade/pkg/config"
	"github.com/fatflowers/payfacade/pkg/metrics"
	"github.com/fatflowers/payfacade/pkg/types"
	"github.com/fatflowers/payfacade/pkg/validation"
)

// Outcome labels for the payment_outcome_total metric.
const (
	outcomeOK             = "ok"
	outcomeNoNextURL      = "no_next_url"
	outcomeValidation     = "validation_failed"
	outcomeNotFound       = "not_found"
	outcomeServiceError   = "service_error"
	outcomeDesynchronised = "desynchronised"
)

// Service orchestrates the ledger and the hosted payment gateway.
// It holds no per-request state.
type Service struct {
	ledger    LedgerClient
	gateway   GatewayClient
	events    EventRecorder
	metrics   *metrics.BusinessMetrics
	validator *validation.Validator
	returnURL *url.URL
	log       *zap.SugaredLogger
}

func NewService(cfg *config.Config, ledgerCli LedgerClient, gatewayCli GatewayClient, events EventRecorder, bm *metrics.BusinessMetrics, log *zap.SugaredLogger) (*Service, error) {
	if ledgerCli == nil || gatewayCli == nil {
		return nil, errors.New("payment: ledger and gateway clients are required")
	}
	returnURL, err := parseReturnURL(cfg.Payment.ReturnURL)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{
		ledger:    ledgerCli,
		gateway:   gatewayCli,
		events:    events,
		metrics:   bm,
		validator: newValidator(),
		returnURL: returnURL,
		log:       log,
	}, nil
}

func parseReturnURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("payment: return url is not configured")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("payment: invalid return url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("payment: return url %q must be absolute", raw)
	}
	return u, nil
}

// newValidator registers the rule that only the domestic regulator can take online payments.
func newValidator() *validation.Validator {
	v := validation.New()
	v.RegisterStructRule(func(sl validator.StructLevel) {
		req := sl.Current().Interface().(OnlinePaymentRequest)
		r := types.Regulator(req.Regulator)
		if r.IsKnown() && r != types.OnlineRegulator {
			sl.ReportError(req.Regulator, "regulator", "Regulator", "online_regulator", "")
		}
	}, OnlinePaymentRequest{})
	return v
}

func (s *Service) validate(req any) error {
	vs, err := s.validator.Struct(req)
	if err != nil {
		return fmt.Errorf("validate request: %w", err)
	}
	if len(vs) > 0 {
		return &ValidationError{Violations: vs}
	}
	return nil
}

func (s *Service) record(ctx context.Context, event *models.PaymentEventLog) {
	if s.events == nil {
		return
	}
	s.events.Record(ctx, event)
}

// buildReturnURL appends the external payment id so the callback can be correlated.
func (s *Service) buildReturnURL(externalPaymentID string) string {
	u := *s.returnURL
	q := u.Query()
	q.Set("id", externalPaymentID)
	u.RawQuery = q.Encode()
	return u.String()
}

// checkCancelled stops a sequence before the next external call once the caller went away.
func checkCancelled(ctx context.Context, step string) error {
	if err := ctx.Err(); err != nil {
		return newServiceError("request cancelled before "+step, err)
	}
	return nil
}

func errPtr(err error) *string {
	if err == nil {
		return nil
	}
	msg := err.Error()
	return &msg
}
