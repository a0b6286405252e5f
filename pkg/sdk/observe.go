package nameres

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// operation names a Client call in metrics labels and log lines.
type operation string

const (
	opLookup     operation = "lookup"
	opBulkLookup operation = "bulk_lookup"
	opSynonyms   operation = "synonyms"
	opStatus     operation = "status"
)

// Outcome label values. Caller mistakes and Solr failures are kept apart
// so a bad query string does not read as an unhealthy index.
const (
	outcomeOK        = "ok"
	outcomeInvalid   = "invalid_request"
	outcomeUpstream  = "upstream_error"
	outcomeMalformed = "malformed_response"
	outcomeError     = "error"
)

func classify(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrInvalidRequest):
		return outcomeInvalid
	case errors.Is(err, ErrUpstream):
		return outcomeUpstream
	case errors.Is(err, ErrMalformedResponse):
		return outcomeMalformed
	default:
		return outcomeError
	}
}

type sdkMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	results  *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nameres",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Name resolution calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nameres",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "Name resolution call duration in seconds, Solr round trips included.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nameres",
			Subsystem: "sdk",
			Name:      "results",
			Help:      "Cliques or documents returned per successful call.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.calls); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.results); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c, or swaps in the collector already registered
// under the same name so several Clients can share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("nameres: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("nameres: register metric: %w", err)
	}
	return nil
}

// observer reports Client calls to an optional slog logger and Prometheus registry.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

// observe records one call. n is the number of results; it is ignored on error.
// Invalid requests log at debug, Solr failures at warn.
func (o *observer) observe(op operation, start time.Time, n int, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	outcome := classify(err)

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(string(op), outcome).Inc()
		o.metrics.duration.WithLabelValues(string(op)).Observe(dur.Seconds())
		if err == nil {
			o.metrics.results.WithLabelValues(string(op)).Observe(float64(n))
		}
	}

	if o.logger == nil {
		return
	}
	switch outcome {
	case outcomeOK:
		o.logger.Debug("nameres call completed", "op", string(op), "results", n, "duration", dur)
	case outcomeInvalid:
		o.logger.Debug("nameres call rejected", "op", string(op), "error", err)
	default:
		o.logger.Warn("nameres call failed", "op", string(op), "outcome", outcome, "duration", dur, "error", err)
	}
}
