package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/payfacade/internal/app/service/payment"
)

func submitOffline(c *gin.Context, log *zap.SugaredLogger, req any, submit func(ctx context.Context) error) {
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithProblem(c, malformedBodyProblem(err))
		return
	}
	if err := submit(c.Request.Context()); err != nil {
		writeProblem(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Record offline payment
// @Description  Records a payment received outside the hosted page. paymentDate is RFC 3339.
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        request body payment.OfflinePaymentRequest true "Offline payment request"
// @Success      204
// @Failure      400  {object}  response.Problem
// @Failure      500  {object}  response.Problem
// @Router       /v1/offline-payments [post]
func ApiSubmitOfflinePayment(mgr payment.PaymentManager, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.OfflinePaymentRequest
		submitOffline(c, log, &req, func(ctx context.Context) error {
			return mgr.SubmitOfflinePayment(ctx, &req)
		})
	}
}

// @Summary      Record offline payment (v2)
// @Description  Same as v1 with the payment method used.
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        request body payment.OfflinePaymentRequestV2 true "Offline payment request"
// @Success      204
// @Failure      400  {object}  response.Problem
// @Failure      500  {object}  response.Problem
// @Router       /v2/offline-payments [post]
func ApiSubmitOfflinePaymentV2(mgr payment.PaymentManager, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.OfflinePaymentRequestV2
		submitOffline(c, log, &req, func(ctx context.Context) error {
			return mgr.SubmitOfflinePaymentV2(ctx, &req)
		})
	}
}
