package lookup

import (
	"context"
	"testing"

	"github.com/kailas-cloud/nameres/internal/domain/lookup/request"
	"github.com/kailas-cloud/nameres/internal/transport/solr"
)

// mockSearcher implements the consumer interface for tests.
type mockSearcher struct {
	selectFn func(ctx context.Context, req *solr.SelectRequest) (*solr.SelectResponse, error)
	calls    int
}

func (m *mockSearcher) Select(ctx context.Context, req *solr.SelectRequest) (*solr.SelectResponse, error) {
	m.calls++
	if m.selectFn != nil {
		return m.selectFn(ctx, req)
	}
	return &solr.SelectResponse{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockSearcher) {
	t.Helper()
	ms := &mockSearcher{}
	return New(ms), ms
}

func mustParams(t *testing.T, o request.Options) request.Params {
	t.Helper()
	p, err := request.NewParams(o)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	return p
}

func mustDecode(t *testing.T, body string) *solr.SelectResponse {
	t.Helper()
	resp, err := solr.DecodeSelect([]byte(body))
	if err != nil {
		t.Fatalf("DecodeSelect: %v", err)
	}
	return resp
}
