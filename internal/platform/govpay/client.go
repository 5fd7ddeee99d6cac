package govpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fatflowers/payfacade/pkg/config"
)

// PaymentRequest starts a hosted payment session.
type PaymentRequest struct {
	Amount      int64           `json:"amount"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	ReturnURL   string          `json:"return_url"`
	Metadata    PaymentMetadata `json:"metadata"`
}

// PaymentMetadata is echoed back by the gateway and shown in its admin tool.
type PaymentMetadata struct {
	UserID         string `json:"user_id"`
	OrganisationID string `json:"organisation_id"`
	Regulator      string `json:"regulator"`
}

type Link struct {
	Href   string `json:"href"`
	Method string `json:"method"`
}

type Links struct {
	Self    *Link `json:"self,omitempty"`
	NextURL *Link `json:"next_url,omitempty"`
	Events  *Link `json:"events,omitempty"`
	Cancel  *Link `json:"cancel,omitempty"`
}

type PaymentResponse struct {
	PaymentID   string `json:"payment_id"`
	Amount      int64  `json:"amount"`
	Reference   string `json:"reference"`
	Description string `json:"description"`
	ReturnURL   string `json:"return_url"`
	State       *State `json:"state,omitempty"`
	Links       Links  `json:"_links"`
}

// NextURL is the hosted page the user has to be sent to, or "" once the session no longer awaits input.
func (r *PaymentResponse) NextURL() string {
	if r == nil || r.Links.NextURL == nil {
		return ""
	}
	return r.Links.NextURL.Href
}

type State struct {
	Status   string `json:"status"`
	Finished bool   `json:"finished"`
	Message  string `json:"message,omitempty"`
	Code     string `json:"code,omitempty"`
}

type PaymentStatusResponse struct {
	PaymentID   string           `json:"payment_id"`
	Amount      int64            `json:"amount"`
	Reference   string           `json:"reference"`
	Description string           `json:"description"`
	Email       string           `json:"email,omitempty"`
	State       *State           `json:"state,omitempty"`
	Metadata    *PaymentMetadata `json:"metadata,omitempty"`
	CreatedDate string           `json:"created_date,omitempty"`
}

// Status returns the raw gateway status, or "" when the response carries no state.
func (r *PaymentStatusResponse) Status() string {
	if r == nil || r.State == nil {
		return ""
	}
	return r.State.Status
}

// ResponseError is returned for any non-2xx answer from the gateway.
type ResponseError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("govpay %s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Client talks to the hosted payment page provider.
type Client struct {
	baseURL          string
	bearerToken      string
	initiateEndpoint string
	statusEndpoint   string
	httpClient       *http.Client
}

func NewClient(cfg *config.Config) (*Client, error) {
	c := cfg.GovPay
	if c.BaseURL == "" || c.InitiateEndpoint == "" || c.StatusEndpoint == "" {
		return nil, errors.New("govpay: base url and endpoint names are required")
	}
	if c.BearerToken == "" {
		return nil, errors.New("govpay: bearer token is required")
	}
	timeout := cfg.HTTPClient.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:          strings.TrimRight(c.BaseURL, "/"),
		bearerToken:      c.BearerToken,
		initiateEndpoint: strings.Trim(c.InitiateEndpoint, "/"),
		statusEndpoint:   strings.Trim(c.StatusEndpoint, "/"),
		httpClient:       &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) InitiatePayment(ctx context.Context, req *PaymentRequest) (*PaymentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	var out PaymentResponse
	if err := c.do(ctx, "initiate payment", http.MethodPost, c.baseURL+"/"+c.initiateEndpoint, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPaymentStatus(ctx context.Context, paymentID string) (*PaymentStatusResponse, error) {
	if paymentID == "" {
		return nil, errors.New("govpay: payment id is required")
	}
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, c.statusEndpoint, url.PathEscape(paymentID))
	var out PaymentStatusResponse
	if err := c.do(ctx, "get payment status", http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, op, method, u string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("govpay %s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &ResponseError{Op: op, StatusCode: resp.StatusCode, Body: string(b)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("govpay %s: decode response: %w", op, err)
	}
	return nil
}
