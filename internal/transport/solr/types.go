package solr

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/nameres/internal/domain"
)

// SelectRequest is the JSON Request API body for the select handler.
type SelectRequest struct {
	Query  Query             `json:"query"`
	Sort   string            `json:"sort,omitempty"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset,omitempty"`
	Filter []string          `json:"filter,omitempty"`
	Fields string            `json:"fields,omitempty"`
	Params map[string]string `json:"params,omitempty"`
}

// Query is either a plain Lucene query string or an edismax block.
type Query struct {
	Lucene  string
	Edismax *Edismax
}

// Edismax is the extended dismax query parser block.
type Edismax struct {
	Query string   `json:"query"`
	QF    string   `json:"qf"`
	PF    string   `json:"pf"`
	BQ    []string `json:"bq"`
	Boost []string `json:"boost"`
}

// MarshalJSON encodes an edismax block as {"edismax": {...}} and a Lucene query as a string.
func (q Query) MarshalJSON() ([]byte, error) {
	if q.Edismax != nil {
		return json.Marshal(struct {
			Edismax *Edismax `json:"edismax"`
		}{q.Edismax})
	}
	return json.Marshal(q.Lucene)
}

// SelectResponse is a decoded select response.
type SelectResponse struct {
	NumFound int
	Docs     []Document
	// Highlighting maps document id to field name to fragments.
	Highlighting map[string]map[string][]string
	// Debug is the top-level debug section, nil when absent.
	Debug map[string]json.RawMessage
	// Raw is the undecoded response body.
	Raw json.RawMessage
}

// Document is a name_lookup index document.
type Document struct {
	ID                    string   `json:"id"`
	CURIE                 string   `json:"curie"`
	PreferredName         string   `json:"preferred_name"`
	Names                 []string `json:"names"`
	Taxa                  []string `json:"taxa"`
	Types                 []string `json:"types"`
	CliqueIdentifierCount int      `json:"clique_identifier_count"`
	Score                 *float64 `json:"score"`

	// Raw is the document as returned by the engine.
	Raw json.RawMessage `json:"-"`
}

type selectEnvelope struct {
	Response *struct {
		NumFound int                `json:"numFound"`
		Docs     *[]json.RawMessage `json:"docs"`
	} `json:"response"`
	Highlighting map[string]map[string][]string `json:"highlighting"`
	Debug        map[string]json.RawMessage     `json:"debug"`
}

// DecodeSelect parses a select response body.
// A body without response.docs is reported as domain.ErrMalformedResponse.
func DecodeSelect(body []byte) (*SelectResponse, error) {
	var env selectEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode select response: %v: %w", err, domain.ErrMalformedResponse)
	}
	if env.Response == nil || env.Response.Docs == nil {
		return nil, fmt.Errorf("missing response.docs: %w", domain.ErrMalformedResponse)
	}

	docs := make([]Document, 0, len(*env.Response.Docs))
	for i, raw := range *env.Response.Docs {
		var d Document
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode document %d: %v: %w", i, err, domain.ErrMalformedResponse)
		}
		d.Raw = raw
		docs = append(docs, d)
	}

	return &SelectResponse{
		NumFound:     env.Response.NumFound,
		Docs:         docs,
		Highlighting: env.Highlighting,
		Debug:        env.Debug,
		Raw:          body,
	}, nil
}

// CoreStatusResponse is the admin cores STATUS response.
type CoreStatusResponse struct {
	Status map[string]CoreStatus `json:"status"`
}

// CoreStatus describes a single core. Index values are passed through untouched.
type CoreStatus struct {
	Name      string                     `json:"name"`
	StartTime json.RawMessage            `json:"startTime"`
	Index     map[string]json.RawMessage `json:"index"`
}
