package lookup

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/kailas-cloud/nameres/internal/domain/lookup/result"
)

const highlightBody = `{
	"response": {"docs": [
		{"id": "1", "curie": "NCBIGene:23621", "preferred_name": "BACE1",
		 "names": ["beta-secretase 1", "BACE"], "types": ["Gene", "biolink:GeneOrGeneProduct"],
		 "taxa": ["NCBITaxon:9606"], "clique_identifier_count": 12, "score": 100.5},
		{"id": "2", "curie": "NCBIGene:25825"}
	]},
	"highlighting": {
		"1": {
			"preferred_name": ["<strong>BACE1</strong>", ""],
			"preferred_name_exactish": ["<strong>BACE1</strong>", "<strong>bace1</strong>"],
			"names": ["<strong>beta-secretase</strong> 1", "<strong>beta-secretase</strong> 1", ""],
			"names_exactish": []
		}
	}
}`

func TestProject_HighlightingMergeOrder(t *testing.T) {
	resp := mustDecode(t, highlightBody)
	results := projectAll(resp, flags{highlighting: true})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	hl := results[0].Highlighting()
	wantLabels := []string{"<strong>BACE1</strong>", "<strong>bace1</strong>"}
	if !reflect.DeepEqual(hl[result.HighlightLabels], wantLabels) {
		t.Errorf("labels = %v, want %v", hl[result.HighlightLabels], wantLabels)
	}
	wantSyn := []string{"<strong>beta-secretase</strong> 1"}
	if !reflect.DeepEqual(hl[result.HighlightSynonyms], wantSyn) {
		t.Errorf("synonyms = %v, want %v", hl[result.HighlightSynonyms], wantSyn)
	}

	// Document without highlight entry still gets both keys.
	hl2 := results[1].Highlighting()
	if len(hl2) != 2 || len(hl2[result.HighlightLabels]) != 0 || len(hl2[result.HighlightSynonyms]) != 0 {
		t.Errorf("expected empty labels/synonyms, got %v", hl2)
	}
}

func TestProject_HighlightingDisabled(t *testing.T) {
	resp := mustDecode(t, highlightBody)
	for _, r := range projectAll(resp, flags{highlighting: false}) {
		if len(r.Highlighting()) != 0 {
			t.Errorf("expected empty highlighting, got %v", r.Highlighting())
		}
	}
}

func TestProject_FieldsAndDefaults(t *testing.T) {
	resp := mustDecode(t, highlightBody)
	results := projectAll(resp, flags{})

	r := results[0]
	if r.Label() != "BACE1" || r.CliqueIdentifierCount() != 12 || r.Score() != 100.5 {
		t.Errorf("unexpected fields: %+v", r)
	}
	wantTypes := []string{"biolink:Gene", "biolink:GeneOrGeneProduct"}
	if !reflect.DeepEqual(r.Types(), wantTypes) {
		t.Errorf("types = %v, want %v", r.Types(), wantTypes)
	}

	empty := results[1]
	if empty.Label() != "" || empty.CliqueIdentifierCount() != 0 {
		t.Errorf("expected defaults, got %+v", empty)
	}
	if len(empty.Synonyms()) != 0 || len(empty.Taxa()) != 0 || len(empty.Types()) != 0 {
		t.Error("expected empty lists")
	}
	if !math.IsNaN(empty.Score()) {
		t.Errorf("missing score should be NaN, got %v", empty.Score())
	}
}

const debugBody = `{
	"response": {"docs": [
		{"id": "1", "curie": "A:1", "score": 2},
		{"id": "2", "curie": "A:2", "score": 1}
	]},
	"debug": {
		"explain": {"2": {"description": "weight(names:x)", "details": []}},
		"timing": {"time": 4.0},
		"parsedquery_toString": "names:x"
	}
}`

func TestProject_DebugNone(t *testing.T) {
	resp := mustDecode(t, debugBody)
	for _, r := range projectAll(resp, flags{debug: ""}) {
		if r.Debug() != nil || r.Explain() != nil {
			t.Errorf("expected no debug/explain for none, got %s / %s", r.Debug(), r.Explain())
		}
	}
}

func TestProject_DebugTimingKeepsExplainInShared(t *testing.T) {
	resp := mustDecode(t, debugBody)
	results := projectAll(resp, flags{debug: "timing"})

	for _, r := range results {
		if r.Explain() != nil {
			t.Error("timing level must not attach per-result explain")
		}
		var dbg map[string]json.RawMessage
		if err := json.Unmarshal(r.Debug(), &dbg); err != nil {
			t.Fatalf("debug not JSON: %v", err)
		}
		if _, ok := dbg["timing"]; !ok {
			t.Error("expected timing in shared debug")
		}
		if string(dbg["explain"]) == string(explainPlaceholder) {
			t.Error("explain should not be stripped when no result carries it")
		}
	}
}

func TestProject_DebugResultsStripsSharedExplain(t *testing.T) {
	resp := mustDecode(t, debugBody)
	results := projectAll(resp, flags{debug: "results"})

	if results[0].Explain() != nil {
		t.Error("result without engine explain should not carry one")
	}
	var explain map[string]any
	if err := json.Unmarshal(results[1].Explain(), &explain); err != nil {
		t.Fatalf("explain not JSON: %v", err)
	}
	if explain["description"] != "weight(names:x)" {
		t.Errorf("explain = %v", explain)
	}

	// Every result, including ones before the explained one, sees the stripped copy.
	for i, r := range results {
		var dbg struct {
			Explain map[string]string `json:"explain"`
		}
		if err := json.Unmarshal(r.Debug(), &dbg); err != nil {
			t.Fatalf("result %d debug not JSON: %v", i, err)
		}
		if dbg.Explain["_comment"] != "Removed to avoid data duplication" {
			t.Errorf("result %d shared explain = %v", i, dbg.Explain)
		}
	}

	// The decoded response must not be mutated.
	if string(resp.Debug["explain"]) == string(explainPlaceholder) {
		t.Error("response debug section was mutated")
	}
}

func TestMergeFragments(t *testing.T) {
	got := mergeFragments([]string{"a", "", "b"}, []string{"b", "c", "a", "  "})
	want := []string{"a", "b", "c", "  "}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mergeFragments = %v, want %v", got, want)
	}
	if got := mergeFragments(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestProject_PreservesOrder(t *testing.T) {
	resp := mustDecode(t, debugBody)
	results := projectAll(resp, flags{})
	if results[0].CURIE() != "A:1" || results[1].CURIE() != "A:2" {
		t.Error("engine order not preserved")
	}
}

