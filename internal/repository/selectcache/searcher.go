package selectcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nameres/internal/db"
	"github.com/kailas-cloud/nameres/internal/transport/solr"
)

const cacheKeyPrefix = "nameres:select:"

// searcher is the decorated engine client (ISP).
type searcher interface {
	Select(ctx context.Context, req *solr.SelectRequest) (*solr.SelectResponse, error)
}

// store is the consumer interface for the response cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedSearcher caches raw select responses in a key-value store.
type CachedSearcher struct {
	inner      searcher
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"/"bypass"), passed explicitly.
func New(
	inner searcher,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSearcher {
	return &CachedSearcher{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Select returns a cached response or queries the engine.
// Requests asking for debug output always go to the engine.
func (c *CachedSearcher) Select(ctx context.Context, req *solr.SelectRequest) (*solr.SelectResponse, error) {
	if req.Params["debug"] != "" {
		c.incCache("bypass")
		return c.selectInner(ctx, req)
	}

	key, err := cacheKey(req)
	if err != nil {
		c.logger.Warn("Failed to compute select cache key", zap.Error(err))
		return c.selectInner(ctx, req)
	}

	if resp, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return resp, nil
	}

	c.incCache("miss")

	resp, err := c.selectInner(ctx, req)
	if err != nil {
		return nil, err
	}

	c.putToCache(ctx, key, resp.Raw)
	return resp, nil
}

func (c *CachedSearcher) selectInner(ctx context.Context, req *solr.SelectRequest) (*solr.SelectResponse, error) {
	resp, err := c.inner.Select(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	return resp, nil
}

func (c *CachedSearcher) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(req *solr.SelectRequest) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal select request: %w", err)
	}
	h := sha256.Sum256(b)
	return cacheKeyPrefix + hex.EncodeToString(h[:]), nil
}

func (c *CachedSearcher) getFromCache(ctx context.Context, key string) (*solr.SelectResponse, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached select response", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	resp, err := solr.DecodeSelect(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached select response", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return resp, true
}

func (c *CachedSearcher) putToCache(ctx context.Context, key string, raw []byte) {
	if len(raw) == 0 {
		return
	}
	if err := c.store.SetWithTTL(ctx, key, raw, c.ttl); err != nil {
		c.logger.Warn("Failed to cache select response", zap.String("key", key), zap.Error(err))
	}
}
