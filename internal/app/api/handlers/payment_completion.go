package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/payfacade/internal/app/service/payment"
)

// @Summary      Complete online payment
// @Description  Reads the gateway outcome and writes it back to the payment record.
// @Tags         Payments
// @Produce      json
// @Param        externalPaymentId path string true "External payment id"
// @Success      200  {object}  payment.CompletionResult
// @Failure      400  {object}  response.Problem
// @Failure      500  {object}  response.Problem
// @Router       /v1/{externalPaymentId}/complete [post]
func ApiCompleteOnlinePayment(mgr payment.PaymentManager, log *zap.SugaredLogger) gin.HandlerFunc {
	return completeOnline(mgr, log, false)
}

// @Summary      Complete online payment (v2)
// @Description  Same as v1; the result also carries the requestor type.
// @Tags         Payments
// @Produce      json
// @Param        externalPaymentId path string true "External payment id"
// @Success      200  {object}  payment.CompletionResult
// @Failure      400  {object}  response.Problem
// @Failure      500  {object}  response.Problem
// @Router       /v2/{externalPaymentId}/complete [post]
func ApiCompleteOnlinePaymentV2(mgr payment.PaymentManager, log *zap.SugaredLogger) gin.HandlerFunc {
	return completeOnline(mgr, log, true)
}

func completeOnline(mgr payment.PaymentManager, log *zap.SugaredLogger, withRequestorType bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := mgr.CompleteOnlinePayment(c.Request.Context(), c.Param("externalPaymentId"))
		if err != nil {
			writeProblem(c, log, err)
			return
		}
		if !withRequestorType {
			res.RequestorType = ""
		}
		c.JSON(http.StatusOK, res)
	}
}
