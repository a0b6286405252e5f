package chi

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/nameres/internal/domain/lookup/request"
)

// InvalidParamFormatError reports a query parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// LookupParams defines parameters for GET/POST /lookup.
type LookupParams struct {
	String          string    `form:"string" json:"string"`
	Autocomplete    *bool     `form:"autocomplete,omitempty" json:"autocomplete,omitempty"`
	Highlighting    *bool     `form:"highlighting,omitempty" json:"highlighting,omitempty"`
	Offset          *int      `form:"offset,omitempty" json:"offset,omitempty"`
	Limit           *int      `form:"limit,omitempty" json:"limit,omitempty"`
	BiolinkType     *[]string `form:"biolink_type,omitempty" json:"biolink_type,omitempty"`
	OnlyPrefixes    *string   `form:"only_prefixes,omitempty" json:"only_prefixes,omitempty"`
	ExcludePrefixes *string   `form:"exclude_prefixes,omitempty" json:"exclude_prefixes,omitempty"`
	OnlyTaxa        *string   `form:"only_taxa,omitempty" json:"only_taxa,omitempty"`
	Debug           *string   `form:"debug,omitempty" json:"debug,omitempty"`
}

// SynonymsParams defines parameters for GET /synonyms.
type SynonymsParams struct {
	PreferredCuries []string `form:"preferred_curies" json:"preferred_curies"`
}

// ReverseLookupParams defines parameters for GET /reverse_lookup.
type ReverseLookupParams struct {
	Curies []string `form:"curies" json:"curies"`
}

func bindLookupParams(q url.Values) (LookupParams, error) {
	var p LookupParams
	bindings := []struct {
		name     string
		required bool
		dest     any
	}{
		{"string", true, &p.String},
		{"autocomplete", false, &p.Autocomplete},
		{"highlighting", false, &p.Highlighting},
		{"offset", false, &p.Offset},
		{"limit", false, &p.Limit},
		{"biolink_type", false, &p.BiolinkType},
		{"only_prefixes", false, &p.OnlyPrefixes},
		{"exclude_prefixes", false, &p.ExcludePrefixes},
		{"only_taxa", false, &p.OnlyTaxa},
		{"debug", false, &p.Debug},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, b.required, b.name, q, b.dest); err != nil {
			return LookupParams{}, &InvalidParamFormatError{ParamName: b.name, Err: err}
		}
	}
	return p, nil
}

func bindCURIEList(q url.Values, name string) ([]string, error) {
	var curies []string
	if err := runtime.BindQueryParameter("form", true, true, name, q, &curies); err != nil {
		return nil, &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return curies, nil
}

// Options converts bound query parameters into lookup options with defaults applied.
func (p LookupParams) Options() request.Options {
	o := request.Options{Limit: request.DefaultLimit}
	if p.Autocomplete != nil {
		o.Autocomplete = *p.Autocomplete
	}
	if p.Highlighting != nil {
		o.Highlighting = *p.Highlighting
	}
	if p.Offset != nil {
		o.Offset = *p.Offset
	}
	if p.Limit != nil {
		o.Limit = *p.Limit
	}
	if p.BiolinkType != nil {
		o.BiolinkTypes = *p.BiolinkType
	}
	if p.OnlyPrefixes != nil {
		o.OnlyPrefixes = *p.OnlyPrefixes
	}
	if p.ExcludePrefixes != nil {
		o.ExcludePrefixes = *p.ExcludePrefixes
	}
	if p.OnlyTaxa != nil {
		o.OnlyTaxa = *p.OnlyTaxa
	}
	if p.Debug != nil {
		o.Debug = *p.Debug
	}
	return o
}

// Options converts the bulk request body into lookup options with defaults applied.
func (b BulkLookupRequest) Options() request.Options {
	limit := request.DefaultLimit
	if b.Limit != nil {
		limit = *b.Limit
	}
	return request.Options{
		Autocomplete:    b.Autocomplete,
		Highlighting:    b.Highlighting,
		Offset:          b.Offset,
		Limit:           limit,
		BiolinkTypes:    b.BiolinkTypes,
		OnlyPrefixes:    b.OnlyPrefixes,
		ExcludePrefixes: b.ExcludePrefixes,
		OnlyTaxa:        b.OnlyTaxa,
		Debug:           b.Debug,
	}
}
