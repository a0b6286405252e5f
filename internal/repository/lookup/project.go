package lookup

import (
	"encoding/json"
	"maps"
	"math"
	"strings"

	"github.com/kailas-cloud/nameres/internal/domain/lookup/debug"
	"github.com/kailas-cloud/nameres/internal/domain/lookup/query"
	"github.com/kailas-cloud/nameres/internal/domain/lookup/result"
	"github.com/kailas-cloud/nameres/internal/transport/solr"
)

const biolinkPrefix = "biolink:"

var explainPlaceholder = json.RawMessage(`{"_comment":"Removed to avoid data duplication"}`)

// flags are the request options that shape projection.
type flags struct {
	highlighting bool
	debug        debug.Level
}

// projectAll converts a select response into results, preserving document order.
// The shared debug payload is attached to every result; once any result carries
// its own explain, the shared copy has its explain section replaced.
func projectAll(resp *solr.SelectResponse, f flags) []result.Result {
	explains := explainsByID(resp.Debug, f.debug)

	perDoc := make([]json.RawMessage, len(resp.Docs))
	anyExplain := false
	for i, doc := range resp.Docs {
		if e, ok := explains[doc.ID]; ok {
			perDoc[i] = e
			anyExplain = true
		}
	}

	shared := sharedDebug(resp.Debug, f.debug, anyExplain)

	results := make([]result.Result, 0, len(resp.Docs))
	for i, doc := range resp.Docs {
		results = append(results, project(doc, resp.Highlighting[doc.ID], perDoc[i], shared, f))
	}
	return results
}

func project(
	doc solr.Document, matches map[string][]string,
	explain, shared json.RawMessage, f flags,
) result.Result {
	score := math.NaN()
	if doc.Score != nil {
		score = *doc.Score
	}

	var hl map[string][]string
	if f.highlighting {
		hl = map[string][]string{
			result.HighlightLabels:   mergeFragments(matches[query.FieldPreferredNameExactish], matches[query.FieldPreferredName]),
			result.HighlightSynonyms: mergeFragments(matches[query.FieldNamesExactish], matches[query.FieldNames]),
		}
	}

	return result.New(result.Fields{
		CURIE:                 doc.CURIE,
		Label:                 doc.PreferredName,
		Highlighting:          hl,
		Synonyms:              doc.Names,
		Taxa:                  doc.Taxa,
		Types:                 prefixTypes(doc.Types),
		Score:                 score,
		CliqueIdentifierCount: doc.CliqueIdentifierCount,
		Explain:               explain,
		Debug:                 shared,
	})
}

// mergeFragments lists exact-ish fragments first, then plain ones,
// dropping empty strings and repeats.
func mergeFragments(exact, plain []string) []string {
	out := make([]string, 0, len(exact)+len(plain))
	seen := make(map[string]struct{}, len(exact)+len(plain))
	for _, group := range [][]string{exact, plain} {
		for _, frag := range group {
			if frag == "" {
				continue
			}
			if _, dup := seen[frag]; dup {
				continue
			}
			seen[frag] = struct{}{}
			out = append(out, frag)
		}
	}
	return out
}

func prefixTypes(types []string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		if !strings.HasPrefix(t, biolinkPrefix) {
			t = biolinkPrefix + t
		}
		out = append(out, t)
	}
	return out
}

func explainsByID(dbg map[string]json.RawMessage, level debug.Level) map[string]json.RawMessage {
	if !level.IncludesExplain() {
		return nil
	}
	raw, ok := dbg["explain"]
	if !ok {
		return nil
	}
	var explains map[string]json.RawMessage
	if err := json.Unmarshal(raw, &explains); err != nil {
		return nil
	}
	return explains
}

func sharedDebug(dbg map[string]json.RawMessage, level debug.Level, stripExplain bool) json.RawMessage {
	if !level.Enabled() || dbg == nil {
		return nil
	}
	if stripExplain {
		dbg = maps.Clone(dbg)
		dbg["explain"] = explainPlaceholder
	}
	b, err := json.Marshal(dbg)
	if err != nil {
		return nil
	}
	return b
}
