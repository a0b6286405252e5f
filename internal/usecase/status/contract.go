package status

import (
	"context"

	"github.com/kailas-cloud/nameres/internal/domain/core"
)

// CoreReader reads the admin status of a search engine core.
type CoreReader interface {
	Core(ctx context.Context, name string) (core.Status, error)
}
