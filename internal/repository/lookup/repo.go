package lookup

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/nameres/internal/domain/lookup/query"
	"github.com/kailas-cloud/nameres/internal/domain/lookup/request"
	"github.com/kailas-cloud/nameres/internal/domain/lookup/result"
	"github.com/kailas-cloud/nameres/internal/transport/solr"
)

// searcher is the consumer interface for engine queries (ISP).
type searcher interface {
	Select(ctx context.Context, req *solr.SelectRequest) (*solr.SelectResponse, error)
}

// Repo implements usecase/lookup.Repository.
type Repo struct {
	searcher searcher
}

// New creates a lookup repository.
func New(s searcher) *Repo {
	return &Repo{searcher: s}
}

// Search executes a built query and projects every returned document in engine order.
func (r *Repo) Search(ctx context.Context, q query.Query, p request.Params) ([]result.Result, error) {
	resp, err := r.searcher.Select(ctx, toSelectRequest(q))
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	return projectAll(resp, flags{highlighting: p.Highlighting(), debug: p.Debug()}), nil
}

func toSelectRequest(q query.Query) *solr.SelectRequest {
	return &solr.SelectRequest{
		Query: solr.Query{Edismax: &solr.Edismax{
			Query: q.Text,
			QF:    q.QueryFields,
			PF:    q.PhraseFields,
			BQ:    q.BoostQueries,
			Boost: q.Boosts,
		}},
		Sort:   q.Sort,
		Limit:  q.Limit,
		Offset: q.Offset,
		Filter: q.Filters,
		Fields: q.Fields,
		Params: q.Params,
	}
}
