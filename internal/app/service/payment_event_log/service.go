package payment_event_log

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/payfacade/internal/models"
	"github.com/fatflowers/payfacade/pkg/logctx"
	"github.com/fatflowers/payfacade/pkg/tool"
	"github.com/fatflowers/payfacade/pkg/types"
)

var (
	// ErrDisabled is returned by read operations when no database is configured.
	ErrDisabled = errors.New("payment event log is disabled")
	// ErrInvalidScan means the filters or sort named a column that cannot be queried.
	ErrInvalidScan = errors.New("invalid scan request")
)

var scanColumns = map[string]bool{
	"external_payment_id": true,
	"gateway_payment_id":  true,
	"operation":           true,
	"step":                true,
	"status":              true,
	"trace_id":            true,
	"created_at":          true,
}

type ScanRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanResponse struct {
	Items []*models.PaymentEventLog `json:"items"`
	Total int64                     `json:"total"`
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// New builds the service; a nil db turns Record into a no-op.
func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

func (s *Service) Enabled() bool { return s != nil && s.db != nil }

// Record asynchronously persists a payment event. Nil input is ignored.
func (s *Service) Record(ctx context.Context, event *models.PaymentEventLog) {
	if !s.Enabled() || event == nil {
		return
	}
	if event.TraceID == "" {
		event.TraceID = logctx.TraceID(ctx)
	}
	// the request context is cancelled once the response is written
	bg := context.WithoutCancel(ctx)
	go func() {
		if err := s.save(bg, event); err != nil {
			logctx.FromCtx(bg, s.log).Errorw("failed to save payment event", "err", err, "external_payment_id", event.ExternalPaymentID, "step", event.Step)
		}
	}()
}

func (s *Service) save(ctx context.Context, event *models.PaymentEventLog) error {
	if event.ID == "" {
		event.ID = tool.GenerateUUIDV7()
	}
	return s.db.WithContext(ctx).Create(event).Error
}

// Scan lists events matching all filters, newest first unless sorted otherwise.
func (s *Service) Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", ErrInvalidScan)
	}
	for _, f := range req.Filters {
		if err := f.Validate(scanColumns); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScan, err)
		}
	}
	if req.Size <= 0 || req.Size > 100 {
		req.Size = 20
	}
	if req.From < 0 {
		req.From = 0
	}
	sortBy := "created_at"
	if req.SortBy != "" {
		if !scanColumns[req.SortBy] {
			return nil, fmt.Errorf("%w: cannot sort by %q", ErrInvalidScan, req.SortBy)
		}
		sortBy = req.SortBy
	}
	desc := req.SortOrder != "asc"

	tx := s.db.WithContext(ctx).Model(&models.PaymentEventLog{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{types.FiltersAnd(req.Filters)}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []*models.PaymentEventLog
	if err := tx.Order(clause.OrderByColumn{Column: clause.Column{Name: sortBy}, Desc: desc}).
		Offset(req.From).
		Limit(req.Size).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return &ScanResponse{Items: items, Total: total}, nil
}

// Module exposes the payment event log via Fx.
var Module = fx.Options(
	fx.Provide(New),
)
