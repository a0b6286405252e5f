package lookup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/nameres/internal/domain/lookup/query"
	"github.com/kailas-cloud/nameres/internal/domain/lookup/request"
	"github.com/kailas-cloud/nameres/internal/domain/lookup/result"
	"github.com/kailas-cloud/nameres/internal/logger"
)

// DefaultBulkConcurrency bounds concurrent engine calls per bulk lookup.
const DefaultBulkConcurrency = 8

// Service resolves free-text names to cliques.
type Service struct {
	repo            Repository
	bulkConcurrency int
}

// New creates a lookup service. A non-positive bulkConcurrency uses DefaultBulkConcurrency.
func New(repo Repository, bulkConcurrency int) *Service {
	if bulkConcurrency <= 0 {
		bulkConcurrency = DefaultBulkConcurrency
	}
	return &Service{repo: repo, bulkConcurrency: bulkConcurrency}
}

// Lookup returns ranked cliques for a single search text.
// Blank text yields an empty list without contacting the engine.
func (s *Service) Lookup(ctx context.Context, req request.Request) ([]result.Result, error) {
	start := time.Now()

	q, ok := query.Build(req)
	if !ok {
		return []result.Result{}, nil
	}

	engineStart := time.Now()
	results, err := s.repo.Search(ctx, q, req.Params())
	engineTime := time.Since(engineStart)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", req.Text(), err)
	}

	p := req.Params()
	logger.FromContext(ctx).Info("Lookup completed",
		zap.String("string", req.Text()),
		zap.Bool("autocomplete", p.Autocomplete()),
		zap.Bool("highlighting", p.Highlighting()),
		zap.Int("offset", p.Offset()),
		zap.Int("limit", p.Limit()),
		zap.Strings("biolink_types", p.BiolinkTypes()),
		zap.String("only_prefixes", p.OnlyPrefixes()),
		zap.String("exclude_prefixes", p.ExcludePrefixes()),
		zap.String("only_taxa", p.OnlyTaxa()),
		zap.Int("results", len(results)),
		zap.Duration("took", time.Since(start)),
		zap.Duration("solr_took", engineTime),
	)

	return results, nil
}

// BulkLookup runs one lookup per text with shared params and keys results by text.
// Lookups run concurrently; a repeated text maps to the result of its last
// occurrence in texts. Any failed lookup fails the whole call.
func (s *Service) BulkLookup(
	ctx context.Context, texts []string, p request.Params,
) (map[string][]result.Result, error) {
	out := make([][]result.Result, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.bulkConcurrency)

	for i, text := range texts {
		g.Go(func() error {
			res, err := s.Lookup(gctx, p.ForText(text))
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("bulk lookup: %w", err)
	}

	byText := make(map[string][]result.Result, len(texts))
	for i, text := range texts {
		byText[text] = out[i]
	}
	return byText, nil
}
