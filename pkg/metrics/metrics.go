package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var HistogramBuckets = []float64{
	// --- Fast responses (0 - 500ms) ---
	25, 50, 75, 100, 150, 200, 300, 400, 500,

	// --- Medium responses (500ms - 2s) ---
	750, 1000, 1250, 1500, 1750, 2000,

	// --- Slow responses (2s - 30s), bounded by the outbound http client timeout ---
	2500, 3000, 4000, 5000, 7500, 10000, 15000, 20000, 30000,
}

// Metric is a definition for the name, description, type, ID, and
// prometheus.Collector type (i.e. CounterVec, Summary, etc) of each metric
type Metric struct {
	MetricCollector prometheus.Collector
	ID              string
	Name            string
	Description     string
	Type            string
	Args            []string
}

// NewMetric associates prometheus.Collector based on Metric.Type
func NewMetric(m *Metric, subsystem string) prometheus.Collector {
	var metric prometheus.Collector
	switch m.Type {
	case "counter_vec":
		metric = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
			},
			m.Args,
		)
	case "counter":
		metric = prometheus.NewCounter(
			prometheus.CounterOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
			},
		)
	case "histogram_vec":
		metric = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
				Buckets:   HistogramBuckets,
			},
			m.Args,
		)
	case "summary_vec":
		metric = prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
			},
			m.Args,
		)
	}
	return metric
}

// register adds c to the default registry, reusing an identical collector registered earlier.
func register(c prometheus.Collector) (prometheus.Collector, error) {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector, nil
		}
		return nil, err
	}
	return c, nil
}

var MetricsBusinessProcess = &Metric{
	ID:          "bpDur",
	Name:        "bp_dur",
	Description: "external call latency in milliseconds, by payment operation and step",
	Type:        "histogram_vec",
	Args:        []string{"type", "subtype"},
}

var MetricsPaymentOutcome = &Metric{
	ID:          "payOutcome",
	Name:        "payment_outcome_total",
	Description: "payment operations partitioned by operation and outcome",
	Type:        "counter_vec",
	Args:        []string{"operation", "outcome"},
}

const (
	RefererKey = "X-Referer"

	subsystem = "payfacade"
)

// BusinessMetrics records orchestration timings and outcomes. A nil receiver is a no-op.
type BusinessMetrics struct {
	stepDur *prometheus.HistogramVec
	outcome *prometheus.CounterVec
}

func NewBusinessMetrics(log *zap.SugaredLogger) *BusinessMetrics {
	m := &BusinessMetrics{}
	if c, err := register(NewMetric(MetricsBusinessProcess, subsystem)); err != nil {
		log.Errorw("metric could not be registered", "metric", MetricsBusinessProcess.Name, "err", err)
	} else {
		m.stepDur = c.(*prometheus.HistogramVec)
	}
	if c, err := register(NewMetric(MetricsPaymentOutcome, subsystem)); err != nil {
		log.Errorw("metric could not be registered", "metric", MetricsPaymentOutcome.Name, "err", err)
	} else {
		m.outcome = c.(*prometheus.CounterVec)
	}
	return m
}

// ObserveStep records the latency of one external call.
func (m *BusinessMetrics) ObserveStep(operation, step string, start time.Time) {
	if m == nil || m.stepDur == nil {
		return
	}
	m.stepDur.WithLabelValues(operation, step).Observe(MillisecondsSince(start))
}

func (m *BusinessMetrics) CountOutcome(operation, outcome string) {
	if m == nil || m.outcome == nil {
		return
	}
	m.outcome.WithLabelValues(operation, outcome).Inc()
}

// MillisecondsSince returns the elapsed time since start in fractional milliseconds.
func MillisecondsSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

var Module = fx.Options(
	fx.Provide(NewBusinessMetrics),
)
