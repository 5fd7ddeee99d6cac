package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/fatflowers/payfacade/internal/app/api/middleware"
	"github.com/fatflowers/payfacade/internal/app/service/payment_event_log"
	"github.com/fatflowers/payfacade/internal/app/service/statistics"
	"github.com/fatflowers/payfacade/pkg/featureflag"
	"github.com/fatflowers/payfacade/pkg/response"
)

type PaymentEventScanner interface {
	Scan(ctx context.Context, req *payment_event_log.ScanRequest) (*payment_event_log.ScanResponse, error)
}

type PaymentStatisticProvider interface {
	GetDailyPaymentStatistic(ctx context.Context, req *statistics.PaymentStatisticRequest) (*statistics.PaymentStatisticResponse, error)
}

func adminErrorCode(err error) response.APIResponseCode {
	if errors.Is(err, payment_event_log.ErrDisabled) || errors.Is(err, payment_event_log.ErrInvalidScan) {
		return response.APIResponseCodeBadRequest
	}
	return response.APIResponseCodeError
}

// @Summary      Scan payment events (Admin)
// @Description  Filterable, paginated view of the orchestration audit trail.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body payment_event_log.ScanRequest true "Filters, pagination and sorting"
// @Success      200  {object}  handlers.RespScanPaymentEvents
// @Router       /api/v1/admin/payment_events [post]
func ApiScanPaymentEvents(svc PaymentEventScanner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment_event_log.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.Scan(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](adminErrorCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Get Payment Statistics (Admin)
// @Description  Daily series aggregated from the payment event log.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body statistics.PaymentStatisticRequest true "Statistic request parameters"
// @Success      200  {object}  handlers.RespPaymentStatistic
// @Router       /api/v1/admin/payment_statistics [post]
func ApiGetPaymentStatistic(svc PaymentStatisticProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statistics.PaymentStatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.GetDailyPaymentStatistic(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](adminErrorCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminRoutes(r gin.IRouter, events PaymentEventScanner, stats PaymentStatisticProvider, flags mw.FlagLookup) {
	gate := mw.FeatureGate(flags, featureflag.PaymentEventsAdmin)
	r.POST("/payment_events", gate, ApiScanPaymentEvents(events))
	r.POST("/payment_statistics", gate, ApiGetPaymentStatistic(stats))
}
