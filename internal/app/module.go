package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/fatflowers/payfacade/internal/app/api/server"
	"github.com/fatflowers/payfacade/internal/app/service/payment"
	"github.com/fatflowers/payfacade/internal/app/service/payment_event_log"
	"github.com/fatflowers/payfacade/internal/app/service/statistics"
	"github.com/fatflowers/payfacade/internal/platform/db"
	"github.com/fatflowers/payfacade/internal/platform/govpay"
	"github.com/fatflowers/payfacade/internal/platform/ledger"
	"github.com/fatflowers/payfacade/pkg/config"
	"github.com/fatflowers/payfacade/pkg/featureflag"
	"github.com/fatflowers/payfacade/pkg/logger"
	"github.com/fatflowers/payfacade/pkg/metrics"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	config.Module,
	logger.Module,
	featureflag.Module,
	metrics.Module,
	db.Module,
	payment_event_log.Module,
	statistics.Module,
	govpay.Module,
	ledger.Module,
	payment.Module,
	server.Module,
)
