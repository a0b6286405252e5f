package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search engine Prometheus metrics.
var (
	SolrRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nameres",
			Name:      "solr_requests_total",
			Help:      "Total number of Solr requests",
		},
		[]string{"endpoint", "status"},
	)

	SolrRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nameres",
			Name:      "solr_request_duration_seconds",
			Help:      "Solr request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	SolrErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nameres",
			Name:      "solr_errors_total",
			Help:      "Total Solr errors",
		},
		[]string{"endpoint", "error_type"},
	)

	SelectCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nameres",
			Name:      "select_cache_total",
			Help:      "Select cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss" / "bypass"
	)

	BulkLookupStrings = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "nameres",
			Name:      "bulk_lookup_strings",
			Help:      "Number of strings per bulk lookup",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)
)

var solrMetricsRegistered bool

// RegisterSolrMetrics registers search engine and cache metrics. Must be called once from main.
func RegisterSolrMetrics() {
	if solrMetricsRegistered {
		return
	}
	prometheus.MustRegister(SolrRequestsTotal)
	prometheus.MustRegister(SolrRequestDuration)
	prometheus.MustRegister(SolrErrorsTotal)
	prometheus.MustRegister(SelectCacheTotal)
	prometheus.MustRegister(BulkLookupStrings)
	solrMetricsRegistered = true
}
