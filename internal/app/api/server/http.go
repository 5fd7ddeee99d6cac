package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/payfacade/docs"
	"github.com/fatflowers/payfacade/internal/app/api/handlers"
	mw "github.com/fatflowers/payfacade/internal/app/api/middleware"
	"github.com/fatflowers/payfacade/internal/app/service/payment"
	"github.com/fatflowers/payfacade/internal/app/service/payment_event_log"
	"github.com/fatflowers/payfacade/internal/app/service/statistics"
	cfgpkg "github.com/fatflowers/payfacade/pkg/config"
	"github.com/fatflowers/payfacade/pkg/featureflag"
	metrics "github.com/fatflowers/payfacade/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

// MetricsServer is the optional dedicated Prometheus listener; Server is nil when metrics share the main router.
type MetricsServer struct {
	Server *http.Server
}

type routeParams struct {
	fx.In

	Engine  *gin.Engine
	Log     *zap.SugaredLogger
	Config  *cfgpkg.Config
	Manager payment.PaymentManager
	Events  *payment_event_log.Service
	Stats   *statistics.Service
	Flags   *featureflag.Flags
}

func registerRoutes(p routeParams) *MetricsServer {
	r, log, cfg := p.Engine, p.Log, p.Config

	// Prometheus metrics
	prom := metrics.NewPrometheus(metrics.NewPrometheusOptions{
		Subsystem: "payfacade",
		ReqCntURLLabelMappingFn: func(c *gin.Context) string {
			if fp := c.FullPath(); fp != "" {
				return fp
			}
			return "unmatched"
		},
		Logger: log,
	})
	if cfg.MetricsAddr != "" {
		prom.SetListenAddress(cfg.MetricsAddr)
	}
	ms := &MetricsServer{Server: prom.Use(r)}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterHealthRoutes(pub, p.Events)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/v1")
	v1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterPaymentV1Routes(v1, p.Manager, p.Flags, cfg.Payment.ErrorURL, log)

	v2 := r.Group("/v2")
	v2.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterPaymentV2Routes(v2, p.Manager, p.Flags, cfg.Payment.ErrorURL, log)

	admin := r.Group("/api/v1/admin")
	admin.Use(
		mw.RequestLoggerMiddleware(log),
		mw.AccessLogMiddleware(log),
		mw.NewRateLimiter(cfg.Admin.RateLimitPerMinute, cfg.Admin.RateLimitBurst).Middleware(),
	)
	handlers.RegisterAdminRoutes(admin, p.Events, p.Stats, p.Flags)

	return ms
}

func serve(log *zap.SugaredLogger, name string, srv *http.Server, shutdown fx.Shutdowner) {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Errorw("server error", "server", name, "addr", srv.Addr, "err", err)
		_ = shutdown.Shutdown(fx.ExitCode(1))
	}
}

func runServer(lc fx.Lifecycle, shutdown fx.Shutdowner, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine, ms *MetricsServer) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go serve(log, "api", srv, shutdown)
			if ms.Server != nil {
				log.Infow("metrics started", "addr", ms.Server.Addr)
				go serve(log, "metrics", ms.Server, shutdown)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			err := srv.Shutdown(ctx)
			if ms.Server != nil {
				err = errors.Join(err, ms.Server.Shutdown(ctx))
			}
			return err
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Provide(registerRoutes),
	fx.Invoke(runServer),
)
