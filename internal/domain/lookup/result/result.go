package result

import (
	"encoding/json"
	"math"
)

// Highlighting keys.
const (
	HighlightLabels   = "labels"
	HighlightSynonyms = "synonyms"
)

// Result is a single lookup hit.
type Result struct {
	curie                 string
	label                 string
	highlighting          map[string][]string
	synonyms              []string
	taxa                  []string
	types                 []string
	score                 float64
	cliqueIdentifierCount int
	explain               json.RawMessage
	debug                 json.RawMessage
}

// Fields groups the values a Result is built from.
type Fields struct {
	CURIE                 string
	Label                 string
	Highlighting          map[string][]string
	Synonyms              []string
	Taxa                  []string
	Types                 []string
	Score                 float64
	CliqueIdentifierCount int
	Explain               json.RawMessage
	Debug                 json.RawMessage
}

// New creates a lookup result. Nil collections become empty.
func New(f Fields) Result {
	r := Result{
		curie:                 f.CURIE,
		label:                 f.Label,
		highlighting:          f.Highlighting,
		synonyms:              f.Synonyms,
		taxa:                  f.Taxa,
		types:                 f.Types,
		score:                 f.Score,
		cliqueIdentifierCount: f.CliqueIdentifierCount,
		explain:               f.Explain,
		debug:                 f.Debug,
	}
	if r.highlighting == nil {
		r.highlighting = map[string][]string{}
	}
	if r.synonyms == nil {
		r.synonyms = []string{}
	}
	if r.taxa == nil {
		r.taxa = []string{}
	}
	if r.types == nil {
		r.types = []string{}
	}
	return r
}

// CURIE returns the clique's preferred identifier.
func (r *Result) CURIE() string { return r.curie }

// Label returns the preferred name.
func (r *Result) Label() string { return r.label }

// Highlighting returns matched fragments keyed by labels and synonyms.
func (r *Result) Highlighting() map[string][]string { return r.highlighting }

// Synonyms returns all known names of the clique.
func (r *Result) Synonyms() []string { return r.synonyms }

// Taxa returns the taxon identifiers.
func (r *Result) Taxa() []string { return r.taxa }

// Types returns the biolink-prefixed types.
func (r *Result) Types() []string { return r.types }

// CliqueIdentifierCount returns the number of identifiers in the clique.
func (r *Result) CliqueIdentifierCount() int { return r.cliqueIdentifierCount }

// Score returns the relevance score, NaN when the engine did not report one.
func (r *Result) Score() float64 { return r.score }

// HasScore reports whether the engine reported a score.
func (r *Result) HasScore() bool { return !math.IsNaN(r.score) }

// Explain returns the per-document explain payload, nil when absent.
func (r *Result) Explain() json.RawMessage { return r.explain }

// Debug returns the shared debug payload, nil when absent.
func (r *Result) Debug() json.RawMessage { return r.debug }
