package chi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	lookuprepo "github.com/kailas-cloud/nameres/internal/repository/lookup"
	synonymsrepo "github.com/kailas-cloud/nameres/internal/repository/synonyms"
	"github.com/kailas-cloud/nameres/internal/transport/solr"
	healthuc "github.com/kailas-cloud/nameres/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/nameres/internal/usecase/lookup"
	statusuc "github.com/kailas-cloud/nameres/internal/usecase/status"
	synonymsuc "github.com/kailas-cloud/nameres/internal/usecase/synonyms"
)

// fakeSolr serves the beta-secretase fixture and records select bodies.
type fakeSolr struct {
	fixture []byte

	mu      sync.Mutex
	selects []map[string]any
}

func (f *fakeSolr) calls() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selects
}

func (f *fakeSolr) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/solr/name_lookup/select":
		body, _ := io.ReadAll(r.Body)
		var req map[string]any
		_ = json.Unmarshal(body, &req)
		f.mu.Lock()
		f.selects = append(f.selects, req)
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(f.fixture)
	case "/solr/name_lookup/admin/ping":
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	default:
		http.NotFound(w, r)
	}
}

func newFixtureRouter(t *testing.T) (http.Handler, *fakeSolr) {
	t.Helper()
	fixture, err := os.ReadFile(filepath.Join("testdata", "beta_secretase_select.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	fake := &fakeSolr{fixture: fixture}
	engine := httptest.NewServer(fake)
	t.Cleanup(engine.Close)

	client := solr.NewClient(&solr.Config{BaseURL: engine.URL, Core: "name_lookup", Logger: zap.NewNop()})
	s := NewServer(
		lookupuc.New(lookuprepo.New(client), 4),
		synonymsuc.New(synonymsrepo.New(client)),
		statusuc.New(client, "name_lookup_shard1_replica_n1", statusuc.Metadata{}),
		healthuc.New(client, nil),
		"test",
		zap.NewNop(),
	)
	r := chi.NewRouter()
	s.Register(r)
	return r, fake
}

func TestFixture_BetaSecretase(t *testing.T) {
	h, fake := newFixtureRouter(t)

	rr := do(t, h, http.MethodGet, "/lookup?string=beta-secretase&limit=5&highlighting=true", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}

	var got []LookupResult
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) == 0 || len(got) > 5 {
		t.Fatalf("expected 1..5 results, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if *got[i].Score > *got[i-1].Score {
			t.Errorf("results not sorted by descending score at %d", i)
		}
	}

	top := got[0]
	if top.CURIE != "NCBIGene:23621" || top.Label != "BACE1" {
		t.Errorf("unexpected top result: %+v", top)
	}
	if len(top.Types) != 2 || top.Types[0] != "biolink:Gene" {
		t.Errorf("types should carry the biolink prefix: %v", top.Types)
	}
	if syn := top.Highlighting["synonyms"]; len(syn) != 2 || syn[0] != "<strong>beta-secretase 1</strong>" {
		t.Errorf("exact-ish fragments should come first: %v", syn)
	}
	if labels, ok := top.Highlighting["labels"]; !ok || len(labels) != 0 {
		t.Errorf("labels should be present and empty: %v", top.Highlighting)
	}
	if last := got[len(got)-1]; len(last.Highlighting["labels"]) != 0 || len(last.Highlighting["synonyms"]) != 0 {
		t.Errorf("documents without matches get empty fragment lists: %v", last.Highlighting)
	}

	if len(fake.calls()) != 1 {
		t.Fatalf("expected one engine call, got %d", len(fake.calls()))
	}
	sent := fake.calls()[0]
	if sent["limit"] != float64(5) {
		t.Errorf("limit sent to engine: got %v", sent["limit"])
	}
	if _, ok := sent["filter"]; ok {
		t.Errorf("no filters expected, got %v", sent["filter"])
	}
	params, _ := sent["params"].(map[string]any)
	if params["hl"] != "true" {
		t.Errorf("highlighting params missing: %v", params)
	}
}

func TestFixture_EmptyStringSkipsEngine(t *testing.T) {
	h, fake := newFixtureRouter(t)

	rr := do(t, h, http.MethodGet, "/lookup?string=", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if rr.Body.String() != "[]\n" {
		t.Errorf("body: got %q", rr.Body.String())
	}
	if len(fake.calls()) != 0 {
		t.Errorf("engine should not be called, got %d calls", len(fake.calls()))
	}
}

func TestFixture_BulkDuplicateKeys(t *testing.T) {
	h, fake := newFixtureRouter(t)

	rr := do(t, h, http.MethodPost, "/bulk-lookup", `{"strings": ["BACE1", "BACE1"], "limit": 5}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var got map[string][]LookupResult
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || len(got["BACE1"]) != 5 {
		t.Errorf("expected one key with 5 results, got %d keys", len(got))
	}
	if len(fake.calls()) != 2 {
		t.Errorf("duplicate strings are each looked up, got %d engine calls", len(fake.calls()))
	}
}

func TestFixture_Health(t *testing.T) {
	h, _ := newFixtureRouter(t)

	rr := do(t, h, http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
}
