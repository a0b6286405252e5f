package synonyms

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/nameres/internal/domain/lookup/query"
	"github.com/kailas-cloud/nameres/internal/transport/solr"
)

// unboundedLimit asks the engine for every matching document.
const unboundedLimit = 1000000

// searcher is the consumer interface for engine queries (ISP).
type searcher interface {
	Select(ctx context.Context, req *solr.SelectRequest) (*solr.SelectResponse, error)
}

// Repo implements usecase/synonyms.Repository.
type Repo struct {
	searcher searcher
}

// New creates a synonyms repository.
func New(s searcher) *Repo {
	return &Repo{searcher: s}
}

// FindByCURIEs returns the raw documents whose curie exactly matches one of curies.
// When the engine returns several documents for one CURIE the last one wins.
func (r *Repo) FindByCURIEs(ctx context.Context, curies []string) (map[string]json.RawMessage, error) {
	resp, err := r.searcher.Select(ctx, &solr.SelectRequest{
		Query: solr.Query{Lucene: query.ByCURIEs(curies)},
		Limit: unboundedLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("select by curie: %w", err)
	}

	docs := make(map[string]json.RawMessage, len(resp.Docs))
	for _, d := range resp.Docs {
		docs[d.CURIE] = d.Raw
	}
	return docs, nil
}
