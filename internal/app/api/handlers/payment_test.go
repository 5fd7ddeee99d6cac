package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/payfacade/internal/app/service/payment"
	"github.com/fatflowers/payfacade/pkg/featureflag"
	"github.com/fatflowers/payfacade/pkg/response"
	"github.com/fatflowers/payfacade/pkg/types"
	"github.com/fatflowers/payfacade/pkg/validation"
)

const testErrorURL = "https://frontend.example/payments/error"

type stubManager struct {
	initiate   func(ctx context.Context, req *payment.OnlinePaymentRequest) (*payment.InitiateResult, error)
	initiateV2 func(ctx context.Context, req *payment.OnlinePaymentRequestV2) (*payment.InitiateResult, error)
	complete   func(ctx context.Context, id string) (*payment.CompletionResult, error)
	offline    func(ctx context.Context, req *payment.OfflinePaymentRequest) error
	offlineV2  func(ctx context.Context, req *payment.OfflinePaymentRequestV2) error
}

func (s *stubManager) InitiateOnlinePayment(ctx context.Context, req *payment.OnlinePaymentRequest) (*payment.InitiateResult, error) {
	return s.initiate(ctx, req)
}

func (s *stubManager) InitiateOnlinePaymentV2(ctx context.Context, req *payment.OnlinePaymentRequestV2) (*payment.InitiateResult, error) {
	return s.initiateV2(ctx, req)
}

func (s *stubManager) CompleteOnlinePayment(ctx context.Context, id string) (*payment.CompletionResult, error) {
	return s.complete(ctx, id)
}

func (s *stubManager) SubmitOfflinePayment(ctx context.Context, req *payment.OfflinePaymentRequest) error {
	return s.offline(ctx, req)
}

func (s *stubManager) SubmitOfflinePaymentV2(ctx context.Context, req *payment.OfflinePaymentRequestV2) error {
	return s.offlineV2(ctx, req)
}

func allFlags() *featureflag.Flags {
	return featureflag.NewStatic(map[string]bool{
		featureflag.OnlinePayments:     true,
		featureflag.OnlinePaymentsV2:   true,
		featureflag.PaymentCompletion:  true,
		featureflag.OfflinePayments:    true,
		featureflag.OfflinePaymentsV2:  true,
		featureflag.PaymentEventsAdmin: true,
	})
}

func newRouter(mgr payment.PaymentManager, flags *featureflag.Flags) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	log := zap.NewNop().Sugar()
	RegisterPaymentV1Routes(r.Group("/v1"), mgr, flags, testErrorURL, log)
	RegisterPaymentV2Routes(r.Group("/v2"), mgr, flags, testErrorURL, log)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) response.Problem {
	t.Helper()
	var p response.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

const onlineBody = `{"userId":"6f0d7a3e-8f0a-4b7e-9a3c-1d2e3f4a5b6c","organisationId":"0e1d2c3b-4a59-4687-a6b5-c4d3e2f1a0b9","reference":"REF1","regulator":"GB-ENG","amount":100,"description":"Registration fee"}`

func TestRegisterPaymentRoutes_RegistersEndpoints(t *testing.T) {
	r := newRouter(&stubManager{}, allFlags())

	got := map[string]bool{}
	for _, rt := range r.Routes() {
		got[rt.Method+" "+rt.Path] = true
	}
	for _, want := range []string{
		"POST /v1/online-payments",
		"POST /v1/:externalPaymentId/complete",
		"POST /v1/offline-payments",
		"POST /v2/online-payments",
		"POST /v2/:externalPaymentId/complete",
		"POST /v2/offline-payments",
	} {
		require.True(t, got[want], want)
	}
}

func TestInitiateOnline_RedirectsToHostedPage(t *testing.T) {
	var seen *payment.OnlinePaymentRequest
	r := newRouter(&stubManager{initiate: func(_ context.Context, req *payment.OnlinePaymentRequest) (*payment.InitiateResult, error) {
		seen = req
		return &payment.InitiateResult{ExternalPaymentID: "ext-1", GatewayPaymentID: "gw-1", NextURL: "https://pay.example/next/gw-1"}, nil
	}}, allFlags())

	w := post(r, "/v1/online-payments", onlineBody)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")
	require.Contains(t, w.Body.String(), `href="https://pay.example/next/gw-1"`)
	require.Equal(t, int64(100), *seen.Amount)
	require.Equal(t, "GB-ENG", seen.Regulator)
}

func TestInitiateOnline_FailuresRedirectToErrorPage(t *testing.T) {
	for name, res := range map[string]struct {
		out *payment.InitiateResult
		err error
	}{
		"service error": {err: &payment.ServiceError{Message: "failed to initiate payment with the gateway", Err: errors.New("502")}},
		"no next url":   {out: &payment.InitiateResult{ExternalPaymentID: "ext-1", GatewayPaymentID: "gw-1"}},
	} {
		t.Run(name, func(t *testing.T) {
			r := newRouter(&stubManager{initiate: func(context.Context, *payment.OnlinePaymentRequest) (*payment.InitiateResult, error) {
				return res.out, res.err
			}}, allFlags())

			w := post(r, "/v1/online-payments", onlineBody)
			require.Equal(t, http.StatusOK, w.Code)
			require.Contains(t, w.Body.String(), testErrorURL)
			require.NotContains(t, w.Body.String(), "502")
		})
	}
}

func TestInitiateOnline_ValidationIsProblem(t *testing.T) {
	r := newRouter(&stubManager{initiateV2: func(context.Context, *payment.OnlinePaymentRequestV2) (*payment.InitiateResult, error) {
		return nil, &payment.ValidationError{Violations: []validation.Violation{
			{Field: "amount", Message: "amount must be greater than 0"},
			{Field: "requestorType", Message: "requestorType is required"},
		}}
	}}, allFlags())

	w := post(r, "/v2/online-payments", onlineBody)
	require.Equal(t, http.StatusBadRequest, w.Code)
	p := decodeProblem(t, w)
	require.Equal(t, titleValidation, p.Title)
	require.Equal(t, []string{"amount must be greater than 0"}, p.Errors["amount"])
	require.Contains(t, p.Errors, "requestorType")
}

func TestInitiateOnline_MalformedBody(t *testing.T) {
	r := newRouter(&stubManager{}, allFlags())
	w := post(r, "/v1/online-payments", `{"amount":"lots"`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, http.StatusBadRequest, decodeProblem(t, w).Status)
}

func TestComplete_ResultShapes(t *testing.T) {
	mgr := &stubManager{complete: func(_ context.Context, id string) (*payment.CompletionResult, error) {
		return &payment.CompletionResult{Status: types.PaymentStatusSuccess, Reference: "REF1", Amount: 100, RequestorType: "Producers", Description: id}, nil
	}}
	r := newRouter(mgr, allFlags())

	w := post(r, "/v1/ext-1/complete", "")
	require.Equal(t, http.StatusOK, w.Code)
	var v1 map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v1))
	require.Equal(t, "Success", v1["status"])
	require.Equal(t, "ext-1", v1["description"])
	require.NotContains(t, v1, "requestorType")

	w = post(r, "/v2/ext-1/complete", "")
	require.Equal(t, http.StatusOK, w.Code)
	var v2 map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v2))
	require.Equal(t, "Producers", v2["requestorType"])
}

func TestComplete_ErrorKinds(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		title  string
	}{
		{name: "not found", err: fmt.Errorf("%w: payment ext-1 has not been initiated with the gateway", payment.ErrPaymentStatusNotFound), status: http.StatusBadRequest, title: titleNotFound},
		{name: "validation", err: &payment.ValidationError{Violations: []validation.Violation{{Field: "externalPaymentId", Message: "externalPaymentId is required"}}}, status: http.StatusBadRequest, title: titleValidation},
		{name: "service", err: &payment.ServiceError{Message: "failed to retrieve payment status", Err: errors.New("secret upstream detail")}, status: http.StatusInternalServerError, title: titleInternal},
		{name: "unexpected", err: errors.New("boom"), status: http.StatusInternalServerError, title: titleInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(&stubManager{complete: func(context.Context, string) (*payment.CompletionResult, error) {
				return nil, tc.err
			}}, allFlags())

			w := post(r, "/v1/ext-1/complete", "")
			require.Equal(t, tc.status, w.Code)
			p := decodeProblem(t, w)
			require.Equal(t, tc.title, p.Title)
			require.NotContains(t, w.Body.String(), "secret upstream detail")
		})
	}
}

func TestOffline_StatusCodes(t *testing.T) {
	body := `{"userId":"6f0d7a3e-8f0a-4b7e-9a3c-1d2e3f4a5b6c","organisationId":"0e1d2c3b-4a59-4687-a6b5-c4d3e2f1a0b9","reference":"R","regulator":"GB-SCT","amount":"120.50","paymentDate":"2024-05-01T00:00:00Z","description":"Bank transfer","paymentMethod":"BankTransfer"}`
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "ok", status: http.StatusNoContent},
		{name: "validation", err: &payment.ValidationError{Violations: []validation.Violation{{Field: "amount", Message: "amount must be greater than 0"}}}, status: http.StatusBadRequest},
		{name: "ledger down", err: &payment.ServiceError{Message: "failed to insert offline payment"}, status: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var method string
			r := newRouter(&stubManager{offlineV2: func(_ context.Context, req *payment.OfflinePaymentRequestV2) error {
				method = req.PaymentMethod
				require.Equal(t, "120.5", req.Amount.String())
				return tc.err
			}}, allFlags())

			w := post(r, "/v2/offline-payments", body)
			require.Equal(t, tc.status, w.Code)
			require.Equal(t, "BankTransfer", method)
		})
	}
}

func TestFeatureGate_DisabledEndpointIsNotFound(t *testing.T) {
	flags := allFlags()
	called := false
	r := newRouter(&stubManager{offline: func(context.Context, *payment.OfflinePaymentRequest) error {
		called = true
		return nil
	}}, flags)

	flags.Replace(map[string]bool{featureflag.OnlinePayments: true})
	w := post(r, "/v1/offline-payments", `{}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.False(t, called)

	flags.Replace(map[string]bool{featureflag.OfflinePayments: true})
	w = post(r, "/v1/offline-payments", `{}`)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.True(t, called)
}

type eventLogStatus bool

func (e eventLogStatus) Enabled() bool { return bool(e) }

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, tc := range []struct {
		events EventLogStatus
		want   string
	}{
		{events: eventLogStatus(true), want: "enabled"},
		{events: eventLogStatus(false), want: "disabled"},
		{events: nil, want: "disabled"},
	} {
		r := gin.New()
		RegisterHealthRoutes(r, tc.events)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", bytes.NewReader(nil)))
		require.Equal(t, http.StatusOK, w.Code)

		var out RespHealth
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(t, "ok", out.Data["status"])
		require.Equal(t, tc.want, out.Data["event_log"])
	}
}
