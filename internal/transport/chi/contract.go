package chi

import (
	"context"
	"encoding/json"

	"github.com/kailas-cloud/nameres/internal/domain/lookup/request"
	"github.com/kailas-cloud/nameres/internal/domain/lookup/result"
	healthuc "github.com/kailas-cloud/nameres/internal/usecase/health"
	statusuc "github.com/kailas-cloud/nameres/internal/usecase/status"
)

// LookupService resolves names to cliques.
type LookupService interface {
	Lookup(ctx context.Context, req request.Request) ([]result.Result, error)
	BulkLookup(ctx context.Context, texts []string, p request.Params) (map[string][]result.Result, error)
}

// SynonymService returns the indexed documents of preferred CURIEs.
type SynonymService interface {
	Lookup(ctx context.Context, curies []string) (map[string]json.RawMessage, error)
}

// StatusService reports search engine core statistics.
type StatusService interface {
	Status(ctx context.Context) (statusuc.Report, error)
}

// HealthService aggregates dependency checks.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}
