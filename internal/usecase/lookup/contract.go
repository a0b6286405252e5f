package lookup

import (
	"context"

	"github.com/kailas-cloud/nameres/internal/domain/lookup/query"
	"github.com/kailas-cloud/nameres/internal/domain/lookup/request"
	"github.com/kailas-cloud/nameres/internal/domain/lookup/result"
)

// Repository executes built queries against the search engine.
type Repository interface {
	Search(ctx context.Context, q query.Query, p request.Params) ([]result.Result, error)
}
