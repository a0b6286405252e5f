package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/nameres/internal/domain/lookup/debug"
	"github.com/kailas-cloud/nameres/internal/domain/lookup/request"
)

// Ranking and projection constants. Fixed, not configurable per request.
const (
	QueryFields     = "preferred_name_exactish^250 names_exactish^100 preferred_name^25 names^10"
	PhraseFields    = "preferred_name_exactish^300 names_exactish^200 preferred_name^30 names^20"
	PopularityBoost = "log(sum(clique_identifier_count, 1))"
	SortOrder       = "score DESC, clique_identifier_count DESC, curie_suffix ASC"
	ReturnFields    = "*, score"
)

// Index field names used by highlighting.
const (
	FieldPreferredNameExactish = "preferred_name_exactish"
	FieldPreferredName         = "preferred_name"
	FieldNamesExactish         = "names_exactish"
	FieldNames                 = "names"
)

const biolinkPrefix = "biolink:"

// Query is a fully built engine request.
type Query struct {
	Text         string
	QueryFields  string
	PhraseFields string
	BoostQueries []string
	Boosts       []string
	Sort         string
	Offset       int
	Limit        int
	Filters      []string
	Fields       string
	Params       map[string]string
}

// Build turns a lookup request into an engine query.
// Returns false when the normalized text is empty and no query should run.
func Build(req request.Request) (Query, bool) {
	text := Normalize(req.Text())
	if text == "" {
		return Query{}, false
	}
	p := req.Params()

	return Query{
		Text:         searchExpression(text, p.Autocomplete()),
		QueryFields:  QueryFields,
		PhraseFields: PhraseFields,
		BoostQueries: []string{},
		Boosts:       []string{PopularityBoost},
		Sort:         SortOrder,
		Offset:       p.Offset(),
		Limit:        p.Limit(),
		Filters:      buildFilters(p),
		Fields:       ReturnFields,
		Params:       buildParams(p.Highlighting(), p.Debug()),
	}, true
}

// ByCURIEs builds an exact-match query over the curie field.
func ByCURIEs(curies []string) string {
	parts := make([]string, 0, len(curies))
	for _, c := range curies {
		parts = append(parts, "curie:"+QuotePhrase(c))
	}
	return strings.Join(parts, " OR ")
}

var phraseEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// QuotePhrase wraps s in double quotes, escaping backslashes and quotes inside it.
func QuotePhrase(s string) string {
	return `"` + phraseEscaper.Replace(s) + `"`
}

func searchExpression(text string, autocomplete bool) string {
	wildcard := ""
	if autocomplete {
		wildcard = "*"
	}
	return fmt.Sprintf(`"%s" OR (%s%s)`, EscapeGroupings(text), EscapeEverything(text), wildcard)
}

var smartQuotes = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", `'`,
	"’", `'`,
)

// Normalize trims, lowercases and replaces smart quotes with ASCII quotes.
func Normalize(s string) string {
	return smartQuotes.Replace(strings.ToLower(strings.TrimSpace(s)))
}

var groupingEscaper = strings.NewReplacer(
	`"`, "",
	`\`, "",
)

// EscapeGroupings drops double quotes and backslashes so the text is safe
// inside an exact-phrase clause.
func EscapeGroupings(s string) string {
	return groupingEscaper.Replace(s)
}

var everythingEscaper = strings.NewReplacer(
	`\`, `\\`,
	`!`, `\!`,
	`(`, `\(`,
	`)`, `\)`,
	`{`, `\{`,
	`}`, `\}`,
	`[`, `\[`,
	`]`, `\]`,
	`^`, `\^`,
	`"`, `\"`,
	`~`, `\~`,
	`*`, `\*`,
	`?`, `\?`,
	`:`, `\:`,
	`/`, `\/`,
	`+`, `\+`,
	`-`, `\-`,
)

var booleanOperators = strings.NewReplacer(
	"&&", " ",
	"||", " ",
)

// EscapeEverything backslash-escapes every query syntax character and
// neutralizes the && and || operators.
func EscapeEverything(s string) string {
	return booleanOperators.Replace(everythingEscaper.Replace(s))
}

// SplitPipeList splits a pipe-separated list, trimming whitespace around
// separators and dropping blank entries.
func SplitPipeList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func buildFilters(p request.Params) []string {
	filters := []string{}
	if f := typeFilter(p.BiolinkTypes()); f != "" {
		filters = append(filters, f)
	}
	if f := includePrefixFilter(SplitPipeList(p.OnlyPrefixes())); f != "" {
		filters = append(filters, f)
	}
	if f := excludePrefixFilter(SplitPipeList(p.ExcludePrefixes())); f != "" {
		filters = append(filters, f)
	}
	if f := taxonFilter(SplitPipeList(p.OnlyTaxa())); f != "" {
		filters = append(filters, f)
	}
	return filters
}

func typeFilter(types []string) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		t = strings.TrimPrefix(strings.TrimSpace(t), biolinkPrefix)
		if t == "" {
			continue
		}
		parts = append(parts, "types:"+t)
	}
	return strings.Join(parts, " OR ")
}

func includePrefixFilter(prefixes []string) string {
	parts := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		parts = append(parts, prefixMatch(p))
	}
	return strings.Join(parts, " OR ")
}

func excludePrefixFilter(prefixes []string) string {
	parts := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		parts = append(parts, "NOT "+prefixMatch(p))
	}
	return strings.Join(parts, " AND ")
}

func prefixMatch(prefix string) string {
	return fmt.Sprintf("curie:/%s:.*/", prefix)
}

// Untagged documents always pass the taxon filter.
func taxonFilter(taxa []string) string {
	if len(taxa) == 0 {
		return ""
	}
	parts := make([]string, 0, len(taxa)+1)
	for _, t := range taxa {
		parts = append(parts, "taxa:"+QuotePhrase(t))
	}
	parts = append(parts, "taxon_specific:false")
	return "(" + strings.Join(parts, " OR ") + ")"
}

// HighlightFields lists the fields highlighted when highlighting is requested.
var HighlightFields = []string{
	FieldPreferredNameExactish,
	FieldNamesExactish,
	FieldPreferredName,
	FieldNames,
}

func buildParams(highlighting bool, level debug.Level) map[string]string {
	params := map[string]string{}
	if highlighting {
		params["hl"] = "true"
		params["hl.method"] = "unified"
		params["hl.encoder"] = "html"
		params["hl.tag.pre"] = "<strong>"
		params["hl.tag.post"] = "</strong>"
		params["hl.fl"] = strings.Join(HighlightFields, ",")
	}
	if v := level.EngineValue(); v != "" {
		params["debug"] = v
	}
	return params
}
