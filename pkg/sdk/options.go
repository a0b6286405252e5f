package nameres

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	solrURL    string
	core       string
	statusCore string
	timeout    time.Duration
	httpClient *http.Client

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	bulkConcurrency int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithSolr sets the Solr base URL and the core queried by lookups.
func WithSolr(baseURL, core string) Option {
	return optionFunc(func(c *clientConfig) {
		c.solrURL = baseURL
		c.core = core
	})
}

// WithStatusCore sets the core reported by Status.
// Default: name_lookup_shard1_replica_n1.
func WithStatusCore(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.statusCore = name
	})
}

// WithTimeout bounds every Solr request. Zero (default) means no timeout.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithHTTPClient replaces the HTTP client used for Solr. WithTimeout is ignored when set.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithCache caches select responses in Redis or Valkey for ttl.
// Debug lookups always bypass the cache.
func WithCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
		c.cacheTTL = ttl
	})
}

// WithBulkConcurrency limits concurrent Solr requests per BulkLookup call.
// Default: 8.
func WithBulkConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.bulkConcurrency = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
