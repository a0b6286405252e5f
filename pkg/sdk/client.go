package nameres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/nameres/internal/db/redis"
	lookuprepo "github.com/kailas-cloud/nameres/internal/repository/lookup"
	"github.com/kailas-cloud/nameres/internal/repository/selectcache"
	synonymsrepo "github.com/kailas-cloud/nameres/internal/repository/synonyms"
	"github.com/kailas-cloud/nameres/internal/transport/solr"
	healthuc "github.com/kailas-cloud/nameres/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/nameres/internal/usecase/lookup"
	statusuc "github.com/kailas-cloud/nameres/internal/usecase/status"
	synonymsuc "github.com/kailas-cloud/nameres/internal/usecase/synonyms"
	"github.com/kailas-cloud/nameres/internal/version"
)

const (
	defaultStatusCore      = "name_lookup_shard1_replica_n1"
	defaultBulkConcurrency = 8
	cacheReadyTimeout      = 10 * time.Second
)

// selecter is what the repositories need from the engine, cached or not.
type selecter interface {
	Select(ctx context.Context, req *solr.SelectRequest) (*solr.SelectResponse, error)
}

// Client is the main entry point for the nameres SDK.
type Client struct {
	lookup   *lookupuc.Service
	synonyms *synonymsuc.Service
	status   *statusuc.Service
	health   *healthuc.Service
	store    *dbRedis.Store
	obs      *observer
}

// New creates a Client. WithSolr is required.
// With WithCache the cache must become reachable before New returns.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		statusCore:      defaultStatusCore,
		bulkConcurrency: defaultBulkConcurrency,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.solrURL == "" || cfg.core == "" {
		return nil, errors.New("nameres: WithSolr is required")
	}
	if cfg.bulkConcurrency < 1 {
		return nil, fmt.Errorf("nameres: bulk concurrency must be positive, got %d", cfg.bulkConcurrency)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	solrClient := solr.NewClient(&solr.Config{
		BaseURL:    cfg.solrURL,
		Core:       cfg.core,
		Timeout:    cfg.timeout,
		HTTPClient: cfg.httpClient,
		Logger:     zap.NewNop(),
	})

	var engine selecter = solrClient
	var cachePinger healthuc.Pinger
	var store *dbRedis.Store
	if len(cfg.cacheAddrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("nameres: connect cache: %w", err)
		}
		if err := store.WaitForReady(ctx, cacheReadyTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("nameres: cache not ready: %w", err)
		}
		engine = selectcache.New(solrClient, store, cfg.cacheTTL, nil, zap.NewNop())
		cachePinger = store
	}

	return &Client{
		lookup:   lookupuc.New(lookuprepo.New(engine), cfg.bulkConcurrency),
		synonyms: synonymsuc.New(synonymsrepo.New(engine)),
		status: statusuc.New(solrClient, cfg.statusCore, statusuc.Metadata{
			NameResVersion: version.Version,
		}),
		health: healthuc.New(solrClient, cachePinger),
		store:  store,
		obs:    obs,
	}, nil
}

// Close releases the cache connection, if any.
func (c *Client) Close() error {
	if c.store != nil {
		c.store.Close()
	}
	return nil
}

// Lookup finds cliques whose names or synonyms match text, best match first.
// An empty text returns no results without querying Solr.
func (c *Client) Lookup(ctx context.Context, text string, opts ...LookupOption) (out []Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opLookup, start, len(out), err) }()

	params, err := lookupParams(opts)
	if err != nil {
		return nil, err
	}
	rs, err := c.lookup.Lookup(ctx, params.ForText(text))
	if err != nil {
		return nil, err
	}
	return toResults(rs), nil
}

// BulkLookup runs Lookup for every text with shared options.
// Results are keyed by input text; duplicate texts share one key.
func (c *Client) BulkLookup(ctx context.Context, texts []string, opts ...LookupOption) (out map[string][]Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opBulkLookup, start, len(out), err) }()

	params, err := lookupParams(opts)
	if err != nil {
		return nil, err
	}
	byText, err := c.lookup.BulkLookup(ctx, texts, params)
	if err != nil {
		return nil, err
	}
	out = make(map[string][]Result, len(byText))
	for text, rs := range byText {
		out[text] = toResults(rs)
	}
	return out, nil
}

// Synonyms returns the indexed document for each CURIE.
// Unknown CURIEs map to an empty JSON object.
func (c *Client) Synonyms(ctx context.Context, curies ...string) (docs map[string]json.RawMessage, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opSynonyms, start, len(docs), err) }()

	return c.synonyms.Lookup(ctx, curies)
}

// Status reports the primary core. A missing core yields Status "error", not an error.
func (c *Client) Status(ctx context.Context) (_ Status, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opStatus, start, 1, err) }()

	rep, err := c.status.Status(ctx)
	if err != nil {
		return Status{}, err
	}
	return toStatus(rep), nil
}
