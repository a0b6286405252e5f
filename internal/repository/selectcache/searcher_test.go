package selectcache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nameres/internal/db"
	"github.com/kailas-cloud/nameres/internal/domain"
	"github.com/kailas-cloud/nameres/internal/transport/solr"
)

const engineBody = `{"response":{"numFound":1,"docs":[{"id":"1","curie":"MONDO:0005737"}]}}`

func testRequest() *solr.SelectRequest {
	return &solr.SelectRequest{
		Query:  solr.Query{Edismax: &solr.Edismax{Query: `"ebola" OR (ebola)`}},
		Limit:  10,
		Params: map[string]string{},
	}
}

func TestSelect_CacheMiss(t *testing.T) {
	inner := &mockSearcher{body: engineBody}
	cs, ms := newTestCachedSearcher(t, inner)

	var stored []byte
	var storedKey string
	var storedTTL time.Duration
	ms.setFn = func(_ context.Context, key string, value []byte, ttl time.Duration) error {
		storedKey, stored, storedTTL = key, value, ttl
		return nil
	}

	resp, err := cs.Select(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Docs) != 1 || resp.Docs[0].CURIE != "MONDO:0005737" {
		t.Fatalf("unexpected docs: %+v", resp.Docs)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 engine call, got %d", inner.calls)
	}
	if string(stored) != engineBody {
		t.Errorf("expected raw body to be cached, got %s", stored)
	}
	if !strings.HasPrefix(storedKey, cacheKeyPrefix) {
		t.Errorf("unexpected key: %s", storedKey)
	}
	if storedTTL != time.Hour {
		t.Errorf("ttl = %v", storedTTL)
	}
}

func TestSelect_CacheHit(t *testing.T) {
	inner := &mockSearcher{body: engineBody}
	cs, ms := newTestCachedSearcher(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte(`{"response":{"docs":[{"id":"9","curie":"DOID:9"}]}}`), nil
	}

	resp, err := cs.Select(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Docs[0].CURIE != "DOID:9" {
		t.Errorf("expected cached doc, got %+v", resp.Docs)
	}
	if inner.calls != 0 {
		t.Errorf("expected no engine call on hit, got %d", inner.calls)
	}
}

func TestSelect_SameRequestSameKey(t *testing.T) {
	cs, ms := newTestCachedSearcher(t, &mockSearcher{body: engineBody})

	var keys []string
	ms.getFn = func(_ context.Context, key string) ([]byte, error) {
		keys = append(keys, key)
		return nil, db.ErrKeyNotFound
	}

	_, _ = cs.Select(context.Background(), testRequest())
	_, _ = cs.Select(context.Background(), testRequest())
	other := testRequest()
	other.Offset = 10
	_, _ = cs.Select(context.Background(), other)

	if len(keys) != 3 {
		t.Fatalf("expected 3 lookups, got %d", len(keys))
	}
	if keys[0] != keys[1] {
		t.Error("identical requests must share a key")
	}
	if keys[0] == keys[2] {
		t.Error("different requests must not share a key")
	}
}

func TestSelect_DebugBypassesCache(t *testing.T) {
	inner := &mockSearcher{body: engineBody}
	cs, ms := newTestCachedSearcher(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		t.Error("cache must not be read for debug requests")
		return nil, db.ErrKeyNotFound
	}
	ms.setFn = func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
		t.Error("cache must not be written for debug requests")
		return nil
	}

	req := testRequest()
	req.Params["debug"] = "timing"
	if _, err := cs.Select(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected engine call, got %d", inner.calls)
	}
}

func TestSelect_StoreErrorsAreIgnored(t *testing.T) {
	inner := &mockSearcher{body: engineBody}
	cs, ms := newTestCachedSearcher(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, &db.Error{Op: db.OpGet, Err: context.DeadlineExceeded}
	}
	ms.setFn = func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
		return &db.Error{Op: db.OpSet, Err: context.DeadlineExceeded}
	}

	resp, err := cs.Select(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("cache failures must not fail the select: %v", err)
	}
	if len(resp.Docs) != 1 {
		t.Errorf("unexpected docs: %+v", resp.Docs)
	}
}

func TestSelect_CorruptEntryFallsThrough(t *testing.T) {
	inner := &mockSearcher{body: engineBody}
	cs, ms := newTestCachedSearcher(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte("not json"), nil
	}

	if _, err := cs.Select(context.Background(), testRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected fallback engine call, got %d", inner.calls)
	}
}

func TestSelect_InnerErrorNotCached(t *testing.T) {
	inner := &mockSearcher{err: domain.NewUpstreamError(503, "down")}
	cs, ms := newTestCachedSearcher(t, inner)

	ms.setFn = func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
		t.Error("errors must not be cached")
		return nil
	}

	_, err := cs.Select(context.Background(), testRequest())
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestSelect_CountsHitsAndMisses(t *testing.T) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_select_cache_total"}, []string{"result"})
	ms := &mockKVStore{}
	cs := New(&mockSearcher{body: engineBody}, ms, time.Minute, counter, zap.NewNop())

	_, _ = cs.Select(context.Background(), testRequest())
	ms.getFn = func(_ context.Context, _ string) ([]byte, error) { return []byte(engineBody), nil }
	_, _ = cs.Select(context.Background(), testRequest())

	if v := testutil.ToFloat64(counter.WithLabelValues("miss")); v != 1 {
		t.Errorf("miss = %v, want 1", v)
	}
	if v := testutil.ToFloat64(counter.WithLabelValues("hit")); v != 1 {
		t.Errorf("hit = %v, want 1", v)
	}
}
