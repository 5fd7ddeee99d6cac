package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/fatflowers/payfacade/internal/app/service/payment_event_log"
	"github.com/fatflowers/payfacade/internal/app/service/statistics"
	"github.com/fatflowers/payfacade/internal/models"
	"github.com/fatflowers/payfacade/pkg/response"
)

type stubScanner struct {
	res *payment_event_log.ScanResponse
	err error
	req *payment_event_log.ScanRequest
}

func (s *stubScanner) Scan(_ context.Context, req *payment_event_log.ScanRequest) (*payment_event_log.ScanResponse, error) {
	s.req = req
	return s.res, s.err
}

type stubStats struct{}

func (stubStats) GetDailyPaymentStatistic(_ context.Context, req *statistics.PaymentStatisticRequest) (*statistics.PaymentStatisticResponse, error) {
	out := &statistics.PaymentStatisticResponse{DataItems: map[statistics.StatisticType][]statistics.PaymentStatisticResponseDataItem{}}
	for _, di := range req.DataItems {
		out.DataItems[di.ID] = []statistics.PaymentStatisticResponseDataItem{{Date: "2024-05-02", Value: 3}}
	}
	return out, nil
}

func newAdminRouter(svc PaymentEventScanner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterAdminRoutes(r.Group("/api/v1/admin"), svc, &stubStats{}, allFlags())
	return r
}

func TestApiScanPaymentEvents_ReturnsEnvelope(t *testing.T) {
	svc := &stubScanner{res: &payment_event_log.ScanResponse{
		Items: []*models.PaymentEventLog{{ID: "e1", ExternalPaymentID: "ext-1", Step: models.PaymentEventStepDesynchronised}},
		Total: 1,
	}}
	r := newAdminRouter(svc)

	w := post(r, "/api/v1/admin/payment_events", `{"filters":[{"field":"step","operator":"eq","values":["desynchronised"]}],"size":10}`)
	require.Equal(t, http.StatusOK, w.Code)

	var out RespScanPaymentEvents
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(t, response.APIResponseCodeOK, out.Code)
	require.Equal(t, int64(1), out.Data.Total)
	require.Equal(t, "ext-1", out.Data.Items[0].ExternalPaymentID)
	require.Equal(t, 10, svc.req.Size)
	require.Len(t, svc.req.Filters, 1)
}

func TestApiScanPaymentEvents_ErrorCodes(t *testing.T) {
	cases := []struct {
		err  error
		code response.APIResponseCode
	}{
		{err: payment_event_log.ErrDisabled, code: response.APIResponseCodeBadRequest},
		{err: fmt.Errorf("%w: cannot sort by x", payment_event_log.ErrInvalidScan), code: response.APIResponseCodeBadRequest},
		{err: fmt.Errorf("connection refused"), code: response.APIResponseCodeError},
	}
	for _, tc := range cases {
		r := newAdminRouter(&stubScanner{err: tc.err})
		w := post(r, "/api/v1/admin/payment_events", `{}`)
		require.Equal(t, http.StatusOK, w.Code)

		var out response.APIResponse[any]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(t, tc.code, out.Code, tc.err.Error())
	}
}

func TestApiGetPaymentStatistic(t *testing.T) {
	r := newAdminRouter(&stubScanner{})
	w := post(r, "/api/v1/admin/payment_statistics", `{"data_items":[{"id":"daily_desynchronised_count"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var out RespPaymentStatistic
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(t, response.APIResponseCodeOK, out.Code)
	require.Equal(t, int64(3), out.Data.DataItems[statistics.StatisticTypeDailyDesynchronisedCount][0].Value)
}
