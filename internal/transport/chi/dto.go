package chi

import (
	"encoding/json"

	"github.com/kailas-cloud/nameres/internal/domain/lookup/result"
	statusuc "github.com/kailas-cloud/nameres/internal/usecase/status"
)

// ErrorCode is the machine-readable error category.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeUpstreamError    ErrorCode = "upstream_error"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code           ErrorCode `json:"code"`
	Message        string    `json:"message"`
	UpstreamStatus int       `json:"upstream_status,omitempty"`
}

// LookupResult is one clique in a lookup response.
type LookupResult struct {
	CURIE                 string              `json:"curie"`
	Label                 string              `json:"label"`
	Highlighting          map[string][]string `json:"highlighting"`
	Synonyms              []string            `json:"synonyms"`
	Taxa                  []string            `json:"taxa"`
	Types                 []string            `json:"types"`
	Score                 *float64            `json:"score"`
	CliqueIdentifierCount int                 `json:"clique_identifier_count"`
	Explain               json.RawMessage     `json:"explain,omitempty"`
	Debug                 json.RawMessage     `json:"debug,omitempty"`
}

// BulkLookupRequest is the body of POST /bulk-lookup.
type BulkLookupRequest struct {
	Strings         []string `json:"strings"`
	Autocomplete    bool     `json:"autocomplete"`
	Highlighting    bool     `json:"highlighting"`
	Offset          int      `json:"offset"`
	Limit           *int     `json:"limit,omitempty"`
	BiolinkTypes    []string `json:"biolink_types"`
	OnlyPrefixes    string   `json:"only_prefixes"`
	ExcludePrefixes string   `json:"exclude_prefixes"`
	OnlyTaxa        string   `json:"only_taxa"`
	Debug           string   `json:"debug"`
}

// SynonymsRequest is the body of POST /synonyms.
type SynonymsRequest struct {
	PreferredCuries []string `json:"preferred_curies"`
}

// ReverseLookupRequest is the body of the deprecated POST /reverse_lookup.
type ReverseLookupRequest struct {
	Curies []string `json:"curies"`
}

// BiolinkModel identifies the Biolink Model release the index was built with.
type BiolinkModel struct {
	Tag string `json:"tag"`
	URL string `json:"url"`
}

// StatusResponse is the body of GET /status when the core is present.
type StatusResponse struct {
	Status          string          `json:"status"`
	Message         string          `json:"message"`
	BabelVersion    string          `json:"babel_version"`
	BabelVersionURL string          `json:"babel_version_url"`
	BiolinkModel    BiolinkModel    `json:"biolink_model"`
	NameResVersion  string          `json:"nameres_version"`
	StartTime       json.RawMessage `json:"startTime"`
	NumDocs         json.RawMessage `json:"numDocs"`
	MaxDoc          json.RawMessage `json:"maxDoc"`
	DeletedDocs     json.RawMessage `json:"deletedDocs"`
	Version         json.RawMessage `json:"version"`
	SegmentCount    json.RawMessage `json:"segmentCount"`
	LastModified    json.RawMessage `json:"lastModified"`
	Size            json.RawMessage `json:"size"`
}

// StatusErrorResponse is the body of GET /status when the core is missing.
type StatusErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func resultToDTO(r *result.Result) LookupResult {
	out := LookupResult{
		CURIE:                 r.CURIE(),
		Label:                 r.Label(),
		Highlighting:          r.Highlighting(),
		Synonyms:              r.Synonyms(),
		Taxa:                  r.Taxa(),
		Types:                 r.Types(),
		CliqueIdentifierCount: r.CliqueIdentifierCount(),
		Explain:               r.Explain(),
		Debug:                 r.Debug(),
	}
	if r.HasScore() {
		score := r.Score()
		out.Score = &score
	}
	return out
}

// ToLookupResults converts results to their wire form, never returning nil.
func ToLookupResults(rs []result.Result) []LookupResult {
	out := make([]LookupResult, len(rs))
	for i := range rs {
		out[i] = resultToDTO(&rs[i])
	}
	return out
}

// ToStatusResponse converts a healthy core report to its wire form.
func ToStatusResponse(rep statusuc.Report) StatusResponse {
	return StatusResponse{
		Status:          rep.Status,
		Message:         rep.Message,
		BabelVersion:    rep.Metadata.BabelVersion,
		BabelVersionURL: rep.Metadata.BabelVersionURL,
		BiolinkModel: BiolinkModel{
			Tag: rep.Metadata.BiolinkModelTag,
			URL: rep.Metadata.BiolinkModelURL,
		},
		NameResVersion: rep.Metadata.NameResVersion,
		StartTime:      rep.StartTime,
		NumDocs:        rep.Index["numDocs"],
		MaxDoc:         rep.Index["maxDoc"],
		DeletedDocs:    rep.Index["deletedDocs"],
		Version:        rep.Index["version"],
		SegmentCount:   rep.Index["segmentCount"],
		LastModified:   rep.Index["lastModified"],
		Size:           rep.Index["size"],
	}
}

// StatusBody picks the wire shape for a report: the full response when the core
// was found, otherwise only status and message.
func StatusBody(rep statusuc.Report) any {
	if rep.Status != statusuc.StatusOK {
		return StatusErrorResponse{Status: rep.Status, Message: rep.Message}
	}
	return ToStatusResponse(rep)
}
