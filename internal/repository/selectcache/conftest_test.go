package selectcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nameres/internal/db"
	"github.com/kailas-cloud/nameres/internal/transport/solr"
)

type mockSearcher struct {
	body  string
	err   error
	calls int
}

func (m *mockSearcher) Select(_ context.Context, _ *solr.SelectRequest) (*solr.SelectResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return solr.DecodeSelect([]byte(m.body))
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedSearcher(t *testing.T, inner *mockSearcher) (*CachedSearcher, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cs := New(inner, ms, time.Hour, nil, zap.NewNop())
	return cs, ms
}
