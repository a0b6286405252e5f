package nameres

import (
	"encoding/json"

	"github.com/kailas-cloud/nameres/internal/domain/lookup/result"
	statusuc "github.com/kailas-cloud/nameres/internal/usecase/status"
)

// Result is one matching clique.
type Result struct {
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

// Status describes the primary core and the data versions it serves.
// Index fields are only set when Status is "ok".
type Status struct {
	Status         string                     `json:"status"`
	Message        string                     `json:"message"`
	NameResVersion string                     `json:"nameres_version,omitempty"`
	StartTime      json.RawMessage            `json:"startTime,omitempty"`
	Index          map[string]json.RawMessage `json:"index,omitempty"`
}

func toResult(r result.Result) Result {
	out := Result{
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

func toResults(rs []result.Result) []Result {
	out := make([]Result, len(rs))
	for i, r := range rs {
		out[i] = toResult(r)
	}
	return out
}

func toStatus(rep statusuc.Report) Status {
	return Status{
		Status:         rep.Status,
		Message:        rep.Message,
		NameResVersion: rep.Metadata.NameResVersion,
		StartTime:      rep.StartTime,
		Index:          rep.Index,
	}
}
