package synonyms

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/nameres/internal/domain"
	"github.com/kailas-cloud/nameres/internal/transport/solr"
)

type mockSearcher struct {
	selectFn func(ctx context.Context, req *solr.SelectRequest) (*solr.SelectResponse, error)
}

func (m *mockSearcher) Select(ctx context.Context, req *solr.SelectRequest) (*solr.SelectResponse, error) {
	return m.selectFn(ctx, req)
}

func TestFindByCURIEs(t *testing.T) {
	ms := &mockSearcher{selectFn: func(_ context.Context, req *solr.SelectRequest) (*solr.SelectResponse, error) {
		if req.Query.Lucene != `curie:"MONDO:0005737" OR curie:"MONDO:9999999"` {
			t.Errorf("query = %q", req.Query.Lucene)
		}
		if req.Query.Edismax != nil {
			t.Error("expected a plain lucene query")
		}
		if req.Limit != 1000000 {
			t.Errorf("limit = %d", req.Limit)
		}
		return solr.DecodeSelect([]byte(`{"response": {"docs": [
			{"id": "1", "curie": "MONDO:0005737", "preferred_name": "Ebola", "shortest_name_length": 5}
		]}}`))
	}}

	docs, err := New(ms).FindByCURIEs(context.Background(), []string{"MONDO:0005737", "MONDO:9999999"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 doc, got %d", len(docs))
	}
	want := `{"id": "1", "curie": "MONDO:0005737", "preferred_name": "Ebola", "shortest_name_length": 5}`
	if string(docs["MONDO:0005737"]) != want {
		t.Errorf("raw doc = %s", docs["MONDO:0005737"])
	}
}

func TestFindByCURIEs_Error(t *testing.T) {
	ms := &mockSearcher{selectFn: func(_ context.Context, _ *solr.SelectRequest) (*solr.SelectResponse, error) {
		return nil, domain.NewUpstreamError(500, "boom")
	}}
	_, err := New(ms).FindByCURIEs(context.Background(), []string{"A:1"})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
