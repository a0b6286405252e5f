package synonyms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nameres/internal/domain"
	"github.com/kailas-cloud/nameres/internal/logger"
)

var emptyDocument = json.RawMessage(`{}`)

// Service returns the indexed synonyms documents of preferred CURIEs.
type Service struct {
	repo Repository
}

// New creates a synonyms service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Lookup maps every requested CURIE to its document, or to {} when the index has none.
func (s *Service) Lookup(ctx context.Context, curies []string) (map[string]json.RawMessage, error) {
	if len(curies) == 0 {
		return nil, domain.InvalidRequestf("at least one CURIE is required")
	}
	start := time.Now()

	found, err := s.repo.FindByCURIEs(ctx, curies)
	if err != nil {
		return nil, fmt.Errorf("synonyms lookup: %w", err)
	}

	out := make(map[string]json.RawMessage, len(curies))
	for _, c := range curies {
		if doc, ok := found[c]; ok {
			out[c] = doc
		} else {
			out[c] = emptyDocument
		}
	}

	logger.FromContext(ctx).Info("CURIE lookup completed",
		zap.Int("curies", len(curies)),
		zap.Strings("requested", curies),
		zap.Int("found", len(found)),
		zap.Duration("took", time.Since(start)),
	)

	return out, nil
}
