package ledger

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

	"github.com/shopspring/decimal"

	"github.com/fatflowers/payfacade/pkg/config"
	"github.com/fatflowers/payfacade/pkg/types"
)

// InsertPaymentRequest creates an online payment record.
type InsertPaymentRequest struct {
	UserID           string              `json:"userId"`
	OrganisationID   string              `json:"organisationId"`
	ReferenceNumber  string              `json:"referenceNumber"`
	Regulator        string              `json:"regulator"`
	Amount           int64               `json:"amount"`
	ReasonForPayment string              `json:"reasonForPayment"`
	RequestorType    string              `json:"requestorType,omitempty"`
	Status           types.PaymentStatus `json:"status"`
}

// UpdatePaymentRequest changes the status of an existing record.
type UpdatePaymentRequest struct {
	ExternalPaymentID       string              `json:"id"`
	GovPayPaymentID         string              `json:"govPayPaymentId,omitempty"`
	UpdatedByUserID         string              `json:"updatedByUserId"`
	UpdatedByOrganisationID string              `json:"updatedByOrganisationId"`
	Reference               string              `json:"reference"`
	Status                  types.PaymentStatus `json:"status"`
	ErrorCode               string              `json:"errorCode,omitempty"`
	ErrorMessage            string              `json:"errorMessage,omitempty"`
}

// PaymentDetails is the ledger's view of one payment record.
type PaymentDetails struct {
	ExternalPaymentID       string              `json:"externalPaymentId"`
	GovPayPaymentID         string              `json:"govPayPaymentId"`
	UpdatedByUserID         string              `json:"updatedByUserId"`
	UpdatedByOrganisationID string              `json:"updatedByOrganisationId"`
	Regulator               string              `json:"regulator"`
	Amount                  int64               `json:"amount"`
	Description             string              `json:"description"`
	RequestorType           string              `json:"requestorType,omitempty"`
	Status                  types.PaymentStatus `json:"status,omitempty"`
}

// InsertOfflinePaymentRequest records a payment made outside the hosted page.
type InsertOfflinePaymentRequest struct {
	UserID         string          `json:"userId"`
	OrganisationID string          `json:"organisationId"`
	Reference      string          `json:"reference"`
	Regulator      string          `json:"regulator"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentDate    time.Time       `json:"paymentDate"`
	Description    string          `json:"description"`
	Comments       string          `json:"comments,omitempty"`
	PaymentMethod  string          `json:"paymentMethod,omitempty"`
}

// ResponseError is returned for any non-2xx answer from the ledger.
type ResponseError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("ledger %s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Client talks to the internal payments service.
type Client struct {
	baseURL         string
	insertEndpoint  string
	updateEndpoint  string
	detailsEndpoint string
	offlineEndpoint string
	httpClient      *http.Client
}

func NewClient(cfg *config.Config) (*Client, error) {
	c := cfg.Ledger
	if c.BaseURL == "" {
		return nil, errors.New("ledger: base url is required")
	}
	if c.InsertEndpoint == "" || c.UpdateEndpoint == "" || c.DetailsEndpoint == "" || c.OfflineEndpoint == "" {
		return nil, errors.New("ledger: endpoint names are required")
	}
	timeout := cfg.HTTPClient.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:         strings.TrimRight(c.BaseURL, "/"),
		insertEndpoint:  strings.Trim(c.InsertEndpoint, "/"),
		updateEndpoint:  strings.Trim(c.UpdateEndpoint, "/"),
		detailsEndpoint: strings.Trim(c.DetailsEndpoint, "/"),
		offlineEndpoint: strings.Trim(c.OfflineEndpoint, "/"),
		httpClient:      &http.Client{Timeout: timeout},
	}, nil
}

// InsertPayment returns the external payment id assigned by the ledger.
func (c *Client) InsertPayment(ctx context.Context, req *InsertPaymentRequest) (string, error) {
	var id string
	if err := c.do(ctx, "insert payment", http.MethodPost, c.url(c.insertEndpoint), req, &id); err != nil {
		return "", err
	}
	return id, nil
}

func (c *Client) UpdatePayment(ctx context.Context, externalPaymentID string, req *UpdatePaymentRequest) error {
	return c.do(ctx, "update payment", http.MethodPut, c.url(c.updateEndpoint, externalPaymentID), req, nil)
}

func (c *Client) GetPaymentDetails(ctx context.Context, externalPaymentID string) (*PaymentDetails, error) {
	var out PaymentDetails
	if err := c.do(ctx, "get payment details", http.MethodGet, c.url(c.detailsEndpoint, externalPaymentID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) InsertOfflinePayment(ctx context.Context, req *InsertOfflinePaymentRequest) error {
	return c.do(ctx, "insert offline payment", http.MethodPost, c.url(c.offlineEndpoint), req, nil)
}

func (c *Client) url(endpoint string, segments ...string) string {
	u := c.baseURL + "/" + endpoint
	for _, s := range segments {
		u += "/" + url.PathEscape(s)
	}
	return u
}

// do sends payload as JSON and decodes the answer into out unless out is nil.
func (c *Client) do(ctx context.Context, op, method, u string, payload, out any) error {
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ledger %s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &ResponseError{Op: op, StatusCode: resp.StatusCode, Body: string(b)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ledger %s: decode response: %w", op, err)
	}
	return nil
}
