package nameres

import "github.com/kailas-cloud/nameres/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest    = domain.ErrInvalidRequest
	ErrUpstream          = domain.ErrUpstream
	ErrMalformedResponse = domain.ErrMalformedResponse
)

// UpstreamError carries the status and body of a failed Solr request.
// Use errors.As() to inspect it.
type UpstreamError = domain.UpstreamError
