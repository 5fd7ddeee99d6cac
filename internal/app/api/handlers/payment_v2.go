package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mw "github.com/fatflowers/payfacade/internal/app/api/middleware"
	"github.com/fatflowers/payfacade/internal/app/service/payment"
	"github.com/fatflowers/payfacade/pkg/featureflag"
)

// RegisterPaymentV2Routes mounts the v2 shapes. Completion is shared with v1 behind the same flag.
func RegisterPaymentV2Routes(r gin.IRouter, mgr payment.PaymentManager, flags mw.FlagLookup, errorURL string, log *zap.SugaredLogger) {
	r.POST("/online-payments", mw.FeatureGate(flags, featureflag.OnlinePaymentsV2), ApiInitiateOnlinePaymentV2(mgr, errorURL, log))
	r.POST("/:externalPaymentId/complete", mw.FeatureGate(flags, featureflag.PaymentCompletion), ApiCompleteOnlinePaymentV2(mgr, log))
	r.POST("/offline-payments", mw.FeatureGate(flags, featureflag.OfflinePaymentsV2), ApiSubmitOfflinePaymentV2(mgr, log))
}
