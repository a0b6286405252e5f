package synonyms

import (
	"context"
	"encoding/json"
)

// Repository finds raw engine documents by exact CURIE.
type Repository interface {
	FindByCURIEs(ctx context.Context, curies []string) (map[string]json.RawMessage, error)
}
