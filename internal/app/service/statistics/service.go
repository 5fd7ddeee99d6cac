package statistics

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/payfacade/internal/app/service/payment_event_log"
	"github.com/fatflowers/payfacade/internal/models"
	"github.com/fatflowers/payfacade/pkg/types"
)

// StatisticType names one daily series computed from the payment event log.
type StatisticType string

const (
	// Online payments that reached the gateway
	StatisticTypeDailyInitiatedCount StatisticType = "daily_initiated_count"

	// Completions written back to the ledger, labelled by mapped status
	StatisticTypeDailyCompletedCount StatisticType = "daily_completed_count"
	StatisticTypeDailyOfflineCount   StatisticType = "daily_offline_count"

	// Failed steps labelled by operation
	StatisticTypeDailyFailureCount        StatisticType = "daily_failure_count"
	StatisticTypeDailyDesynchronisedCount StatisticType = "daily_desynchronised_count"

	// value is the success share in basis points, value2 completions, value3 successes
	StatisticTypeCompletionSuccessRate StatisticType = "completion_success_rate"
)

var filterColumns = map[string]bool{
	"created_at":          true,
	"external_payment_id": true,
	"trace_id":            true,
}

type PaymentStatisticDataItem struct {
	ID StatisticType `json:"id"`
}

type PaymentStatisticRequest struct {
	Filters   []*types.CommonFilter       `json:"filters"`
	DataItems []*PaymentStatisticDataItem `json:"data_items"`
}

type PaymentStatisticResponseDataItem struct {
	Date   string `json:"date"`
	Label  string `json:"label,omitempty"`
	Value  int64  `json:"value"`
	Value2 int64  `json:"value2,omitempty"`
	Value3 int64  `json:"value3,omitempty"`
}

type PaymentStatisticResponse struct {
	DataItems map[StatisticType][]PaymentStatisticResponseDataItem `json:"data_items"`
}

// Service aggregates the payment event log into daily series for support dashboards.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

const dayExpr = "TO_CHAR(created_at, 'YYYY-MM-DD')"

// eventsWhere selects one orchestration step, optionally of one operation.
func eventsWhere(op models.PaymentOperation, step models.PaymentEventStep) map[string]any {
	where := map[string]any{"step": string(step)}
	if op != "" {
		where["operation"] = string(op)
	}
	return where
}

func (s *Service) events(ctx context.Context, request *PaymentStatisticRequest) *gorm.DB {
	tx := s.db.WithContext(ctx).Table(models.PaymentEventLog{}.TableName())
	if len(request.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{types.FiltersAnd(request.Filters)}})
	}
	return tx
}

func (s *Service) dailyCount(ctx context.Context, request *PaymentStatisticRequest, labelColumn string, where map[string]any) ([]PaymentStatisticResponseDataItem, error) {
	var results []PaymentStatisticResponseDataItem
	sel := dayExpr + " AS date, count(*) AS value"
	if labelColumn != "" {
		sel = dayExpr + " AS date, " + labelColumn + " AS label, count(*) AS value"
	}
	q := s.events(ctx, request).Select(sel).Where(where).Group(dayExpr)
	if labelColumn != "" {
		q = q.Group(labelColumn)
	}
	if err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true}).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getCompletionSuccessRate(ctx context.Context, request *PaymentStatisticRequest) ([]PaymentStatisticResponseDataItem, error) {
	var results []PaymentStatisticResponseDataItem
	q := s.events(ctx, request).
		Select(dayExpr+" AS date, "+
			"CAST(ROUND(COUNT(*) FILTER (WHERE status = ?) * 10000.0 / COUNT(*)) AS INTEGER) AS value, "+
			"COUNT(*) AS value2, "+
			"COUNT(*) FILTER (WHERE status = ?) AS value3", string(types.PaymentStatusSuccess), string(types.PaymentStatusSuccess)).
		Where(eventsWhere(models.PaymentOperationComplete, models.PaymentEventStepLedgerUpdated)).
		Group(dayExpr).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true})
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getStatistic(ctx context.Context, request *PaymentStatisticRequest, dataItem *PaymentStatisticDataItem) ([]PaymentStatisticResponseDataItem, error) {
	switch dataItem.ID {
	case StatisticTypeDailyInitiatedCount:
		return s.dailyCount(ctx, request, "", eventsWhere(models.PaymentOperationInitiate, models.PaymentEventStepGatewayCreated))
	case StatisticTypeDailyCompletedCount:
		return s.dailyCount(ctx, request, "status", eventsWhere(models.PaymentOperationComplete, models.PaymentEventStepLedgerUpdated))
	case StatisticTypeDailyOfflineCount:
		return s.dailyCount(ctx, request, "", eventsWhere(models.PaymentOperationOffline, models.PaymentEventStepLedgerInserted))
	case StatisticTypeDailyFailureCount:
		return s.dailyCount(ctx, request, "operation", eventsWhere("", models.PaymentEventStepFailed))
	case StatisticTypeDailyDesynchronisedCount:
		return s.dailyCount(ctx, request, "", eventsWhere("", models.PaymentEventStepDesynchronised))
	case StatisticTypeCompletionSuccessRate:
		return s.getCompletionSuccessRate(ctx, request)
	default:
		return nil, fmt.Errorf("%w: invalid data item id: %s", payment_event_log.ErrInvalidScan, dataItem.ID)
	}
}

// GetDailyPaymentStatistic computes every requested series concurrently.
func (s *Service) GetDailyPaymentStatistic(ctx context.Context, request *PaymentStatisticRequest) (*PaymentStatisticResponse, error) {
	if s == nil || s.db == nil {
		return nil, payment_event_log.ErrDisabled
	}
	if request == nil || len(request.DataItems) == 0 {
		return nil, fmt.Errorf("%w: no data items requested", payment_event_log.ErrInvalidScan)
	}
	if lo.Contains(request.DataItems, nil) {
		return nil, fmt.Errorf("%w: null data item", payment_event_log.ErrInvalidScan)
	}
	for _, f := range request.Filters {
		if err := f.Validate(filterColumns); err != nil {
			return nil, fmt.Errorf("%w: %v", payment_event_log.ErrInvalidScan, err)
		}
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(request.DataItems))
	resChan := make(chan lo.Entry[StatisticType, []PaymentStatisticResponseDataItem], len(request.DataItems))
	for _, item := range request.DataItems {
		wg.Add(1)
		go func(di *PaymentStatisticDataItem) {
			defer wg.Done()
			res, err := s.getStatistic(ctx, request, di)
			if err != nil {
				errChan <- err
				return
			}
			resChan <- lo.Entry[StatisticType, []PaymentStatisticResponseDataItem]{Key: di.ID, Value: res}
		}(item)
	}
	wg.Wait()
	close(errChan)
	close(resChan)

	if err := <-errChan; err != nil {
		return nil, err
	}
	results := make(map[StatisticType][]PaymentStatisticResponseDataItem, len(request.DataItems))
	for entry := range resChan {
		results[entry.Key] = entry.Value
	}
	return &PaymentStatisticResponse{DataItems: results}, nil
}

// Module exposes the statistics service via Fx.
var Module = fx.Options(
	fx.Provide(New),
)
