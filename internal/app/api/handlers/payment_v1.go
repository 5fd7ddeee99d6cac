package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mw "github.com/fatflowers/payfacade/internal/app/api/middleware"
	"github.com/fatflowers/payfacade/internal/app/service/payment"
	"github.com/fatflowers/payfacade/pkg/featureflag"
)

func RegisterPaymentV1Routes(r gin.IRouter, mgr payment.PaymentManager, flags mw.FlagLookup, errorURL string, log *zap.SugaredLogger) {
	r.POST("/online-payments", mw.FeatureGate(flags, featureflag.OnlinePayments), ApiInitiateOnlinePayment(mgr, errorURL, log))
	r.POST("/:externalPaymentId/complete", mw.FeatureGate(flags, featureflag.PaymentCompletion), ApiCompleteOnlinePayment(mgr, log))
	r.POST("/offline-payments", mw.FeatureGate(flags, featureflag.OfflinePayments), ApiSubmitOfflinePayment(mgr, log))
}
