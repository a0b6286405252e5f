package request

import (
	"slices"

	"github.com/kailas-cloud/nameres/internal/domain"
	"github.com/kailas-cloud/nameres/internal/domain/lookup/debug"
)

// Lookup parameter limits.
const (
	DefaultLimit = 10
	MaxLimit     = 1000
)

// Options holds raw lookup flags as received from a caller.
type Options struct {
	Autocomplete    bool
	Highlighting    bool
	Offset          int
	Limit           int
	BiolinkTypes    []string
	OnlyPrefixes    string
	ExcludePrefixes string
	OnlyTaxa        string
	Debug           string
}

// Params is a validated set of lookup flags shared by single and bulk lookups.
type Params struct {
	autocomplete    bool
	highlighting    bool
	offset          int
	limit           int
	biolinkTypes    []string
	onlyPrefixes    string
	excludePrefixes string
	onlyTaxa        string
	debug           debug.Level
}

// NewParams validates lookup flags.
// Offset must be >= 0, limit within 0..MaxLimit, debug one of the known levels.
func NewParams(o Options) (Params, error) {
	if o.Offset < 0 {
		return Params{}, domain.InvalidRequestf("offset must be greater than or equal to 0, got %d", o.Offset)
	}
	if o.Limit < 0 || o.Limit > MaxLimit {
		return Params{}, domain.InvalidRequestf("limit must be between 0 and %d, got %d", MaxLimit, o.Limit)
	}
	level, err := debug.Parse(o.Debug)
	if err != nil {
		return Params{}, err
	}
	return Params{
		autocomplete:    o.Autocomplete,
		highlighting:    o.Highlighting,
		offset:          o.Offset,
		limit:           o.Limit,
		biolinkTypes:    slices.Clone(o.BiolinkTypes),
		onlyPrefixes:    o.OnlyPrefixes,
		excludePrefixes: o.ExcludePrefixes,
		onlyTaxa:        o.OnlyTaxa,
		debug:           level,
	}, nil
}

// ForText binds the params to a search text.
func (p Params) ForText(text string) Request {
	return Request{text: text, params: p}
}

// Autocomplete reports whether the last token may be incomplete.
func (p Params) Autocomplete() bool { return p.autocomplete }

// Highlighting reports whether matched fragments should be returned.
func (p Params) Highlighting() bool { return p.highlighting }

// Offset returns the number of results to skip.
func (p Params) Offset() int { return p.offset }

// Limit returns the maximum number of results.
func (p Params) Limit() int { return p.limit }

// BiolinkTypes returns the type filters as supplied.
func (p Params) BiolinkTypes() []string { return p.biolinkTypes }

// OnlyPrefixes returns the pipe-separated include-prefix list.
func (p Params) OnlyPrefixes() string { return p.onlyPrefixes }

// ExcludePrefixes returns the pipe-separated exclude-prefix list.
func (p Params) ExcludePrefixes() string { return p.excludePrefixes }

// OnlyTaxa returns the pipe-separated taxon list.
func (p Params) OnlyTaxa() string { return p.onlyTaxa }

// Debug returns the debug level.
func (p Params) Debug() debug.Level { return p.debug }

// Request is a single validated lookup.
type Request struct {
	text   string
	params Params
}

// New validates options and binds them to a search text.
func New(text string, o Options) (Request, error) {
	p, err := NewParams(o)
	if err != nil {
		return Request{}, err
	}
	return p.ForText(text), nil
}

// Text returns the raw search text.
func (r Request) Text() string { return r.text }

// Params returns the lookup flags.
func (r Request) Params() Params { return r.params }
