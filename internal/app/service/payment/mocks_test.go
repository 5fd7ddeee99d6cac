package payment

import (
	"context"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/payfacade/internal/models"
	"github.com/fatflowers/payfacade/internal/platform/govpay"
	"github.com/fatflowers/payfacade/internal/platform/ledger"
	"github.com/fatflowers/payfacade/pkg/config"
)

// callLog records the order in which external systems were hit.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type MockLedger struct {
	mock.Mock
	log *callLog
}

func (m *MockLedger) InsertPayment(ctx context.Context, req *ledger.InsertPaymentRequest) (string, error) {
	m.log.add("ledger.insert")
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockLedger) UpdatePayment(ctx context.Context, externalPaymentID string, req *ledger.UpdatePaymentRequest) error {
	m.log.add("ledger.update")
	args := m.Called(ctx, externalPaymentID, req)
	return args.Error(0)
}

func (m *MockLedger) GetPaymentDetails(ctx context.Context, externalPaymentID string) (*ledger.PaymentDetails, error) {
	m.log.add("ledger.get")
	args := m.Called(ctx, externalPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PaymentDetails), args.Error(1)
}

func (m *MockLedger) InsertOfflinePayment(ctx context.Context, req *ledger.InsertOfflinePaymentRequest) error {
	m.log.add("ledger.offline")
	args := m.Called(ctx, req)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
	log *callLog
}

func (m *MockGateway) InitiatePayment(ctx context.Context, req *govpay.PaymentRequest) (*govpay.PaymentResponse, error) {
	m.log.add("gateway.initiate")
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*govpay.PaymentResponse), args.Error(1)
}

func (m *MockGateway) GetPaymentStatus(ctx context.Context, gatewayPaymentID string) (*govpay.PaymentStatusResponse, error) {
	m.log.add("gateway.status")
	args := m.Called(ctx, gatewayPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*govpay.PaymentStatusResponse), args.Error(1)
}

type memoryRecorder struct {
	mu     sync.Mutex
	events []*models.PaymentEventLog
}

func (r *memoryRecorder) Record(_ context.Context, event *models.PaymentEventLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *memoryRecorder) steps() []models.PaymentEventStep {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo.Map(r.events, func(e *models.PaymentEventLog, _ int) models.PaymentEventStep { return e.Step })
}

type fixture struct {
	svc     *Service
	ledger  *MockLedger
	gateway *MockGateway
	events  *memoryRecorder
	calls   *callLog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	calls := &callLog{}
	f := &fixture{
		ledger:  &MockLedger{log: calls},
		gateway: &MockGateway{log: calls},
		events:  &memoryRecorder{},
		calls:   calls,
	}
	cfg := &config.Config{Payment: config.PaymentConfig{ReturnURL: "https://frontend.example/payments/return"}}
	svc, err := NewService(cfg, f.ledger, f.gateway, f.events, nil, zap.NewNop().Sugar())
	require.NoError(t, err)
	f.svc = svc
	t.Cleanup(func() {
		f.ledger.AssertExpectations(t)
		f.gateway.AssertExpectations(t)
	})
	return f
}

const (
	testUserID = "6f0d7a3e-8f0a-4b7e-9a3c-1d2e3f4a5b6c"
	testOrgID  = "0e1d2c3b-4a59-4687-a6b5-c4d3e2f1a0b9"
)

func validOnlineRequest() *OnlinePaymentRequest {
	return &OnlinePaymentRequest{
		UserID:         testUserID,
		OrganisationID: testOrgID,
		Reference:      "REF-001",
		Regulator:      "GB-ENG",
		Amount:         lo.ToPtr(int64(25000)),
		Description:    "Registration fee",
	}
}

func validOfflineRequest() *OfflinePaymentRequest {
	return &OfflinePaymentRequest{
		UserID:         testUserID,
		OrganisationID: testOrgID,
		Reference:      "REF-OFF-1",
		Regulator:      "GB-SCT",
		Amount:         decimal.RequireFromString("120.50"),
		PaymentDate:    lo.ToPtr(mustDate("2024-05-01")),
		Description:    "Bank transfer",
	}
}
