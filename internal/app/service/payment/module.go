package payment

import (
	"go.uber.org/fx"

	"github.com/fatflowers/payfacade/internal/app/service/payment_event_log"
	"github.com/fatflowers/payfacade/internal/platform/govpay"
	"github.com/fatflowers/payfacade/internal/platform/ledger"
)

// Module exposes the payment orchestrator via Fx.
var Module = fx.Options(
	fx.Provide(
		func(c *ledger.Client) LedgerClient { return c },
		func(c *govpay.Client) GatewayClient { return c },
		func(s *payment_event_log.Service) EventRecorder { return s },
	),
	fx.Provide(NewService),
	fx.Provide(func(s *Service) PaymentManager { return s }),
)
