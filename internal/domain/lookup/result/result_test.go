package result

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNew_DefaultsEmptyCollections(t *testing.T) {
	r := New(Fields{CURIE: "MONDO:1", Score: math.NaN()})
	if r.Highlighting() == nil || len(r.Highlighting()) != 0 {
		t.Errorf("Highlighting() = %v, want empty map", r.Highlighting())
	}
	if r.Synonyms() == nil || r.Taxa() == nil || r.Types() == nil {
		t.Error("expected non-nil empty slices")
	}
	if r.HasScore() {
		t.Error("NaN score should report HasScore() == false")
	}
	if r.Explain() != nil || r.Debug() != nil {
		t.Error("explain/debug should be nil")
	}
}

func TestNew_Accessors(t *testing.T) {
	r := New(Fields{
		CURIE:                 "MONDO:0005737",
		Label:                 "Ebola hemorrhagic fever",
		Highlighting:          map[string][]string{HighlightLabels: {"<strong>ebola</strong>"}},
		Synonyms:              []string{"EHF"},
		Taxa:                  []string{"NCBITaxon:9606"},
		Types:                 []string{"biolink:Disease"},
		Score:                 12.5,
		CliqueIdentifierCount: 4,
		Explain:               json.RawMessage(`{"value":1}`),
		Debug:                 json.RawMessage(`{}`),
	})
	if r.CURIE() != "MONDO:0005737" || r.Label() != "Ebola hemorrhagic fever" {
		t.Error("identity fields not preserved")
	}
	if got := r.Highlighting()[HighlightLabels]; len(got) != 1 {
		t.Errorf("labels = %v", got)
	}
	if !r.HasScore() || r.Score() != 12.5 {
		t.Errorf("Score() = %v", r.Score())
	}
	if r.CliqueIdentifierCount() != 4 {
		t.Errorf("CliqueIdentifierCount() = %d", r.CliqueIdentifierCount())
	}
	if string(r.Explain()) != `{"value":1}` || string(r.Debug()) != `{}` {
		t.Error("raw payloads not preserved")
	}
}
