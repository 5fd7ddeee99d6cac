package govpay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fatflowers/payfacade/pkg/config"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(&config.Config{
		HTTPClient: config.HTTPClientConfig{Timeout: 2 * time.Second},
		GovPay: config.GovPayConfig{
			BaseURL:          srv.URL + "/v1/",
			BearerToken:      "tok",
			InitiateEndpoint: "payments",
			StatusEndpoint:   "/payments/",
		},
	})
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresConfiguration(t *testing.T) {
	_, err := NewClient(&config.Config{GovPay: config.GovPayConfig{BaseURL: "http://x", InitiateEndpoint: "payments", StatusEndpoint: "payments"}})
	require.ErrorContains(t, err, "bearer token")

	_, err = NewClient(&config.Config{GovPay: config.GovPayConfig{BearerToken: "t"}})
	require.ErrorContains(t, err, "base url")
}

func TestInitiatePayment_PostsRequestAndDecodesLinks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payments", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var got PaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Equal(t, int64(100), got.Amount)
		require.Equal(t, "GB-ENG", got.Metadata.Regulator)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"payment_id":"gp-1","_links":{"next_url":{"href":"https://pay.example/gp-1","method":"GET"}}}`))
	})

	res, err := c.InitiatePayment(context.Background(), &PaymentRequest{
		Amount:   100,
		Metadata: PaymentMetadata{Regulator: "GB-ENG"},
	})
	require.NoError(t, err)
	require.Equal(t, "gp-1", res.PaymentID)
	require.Equal(t, "https://pay.example/gp-1", res.NextURL())
}

func TestGetPaymentStatus_DecodesState(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/payments/gp-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"payment_id":"gp-1","reference":"REF1","email":"a@b.c","state":{"status":"failed","finished":true,"code":"P0030","message":"Payment was cancelled by the user"}}`))
	})

	res, err := c.GetPaymentStatus(context.Background(), "gp-1")
	require.NoError(t, err)
	require.Equal(t, "failed", res.Status())
	require.Equal(t, "P0030", res.State.Code)
	require.Equal(t, "a@b.c", res.Email)
}

func TestGetPaymentStatus_NonSuccessIsResponseError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"P0200","description":"Not found"}`))
	})

	_, err := c.GetPaymentStatus(context.Background(), "missing")
	var re *ResponseError
	require.True(t, errors.As(err, &re))
	require.Equal(t, http.StatusNotFound, re.StatusCode)
	require.Contains(t, re.Body, "P0200")
}

func TestInitiatePayment_HonoursCancelledContext(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.InitiatePayment(ctx, &PaymentRequest{})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, called)
}

func TestStatusResponse_MissingStateHasNoStatus(t *testing.T) {
	var r *PaymentStatusResponse
	require.Equal(t, "", r.Status())
	require.Equal(t, "", (&PaymentStatusResponse{}).Status())
	require.Equal(t, "", (&PaymentResponse{}).NextURL())
}
