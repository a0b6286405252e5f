package nameres

import "github.com/kailas-cloud/nameres/internal/domain/lookup/request"

// LookupOption configures a Lookup or BulkLookup call.
type LookupOption func(*request.Options)

// Autocomplete treats the last token as a prefix.
func Autocomplete() LookupOption {
	return func(o *request.Options) { o.Autocomplete = true }
}

// Highlighting returns the matched label and synonym fragments.
func Highlighting() LookupOption {
	return func(o *request.Options) { o.Highlighting = true }
}

// Offset skips the first n results.
func Offset(n int) LookupOption {
	return func(o *request.Options) { o.Offset = n }
}

// Limit caps the number of results. Default: 10.
func Limit(n int) LookupOption {
	return func(o *request.Options) { o.Limit = n }
}

// Types restricts results to the given Biolink types, with or without the biolink: prefix.
func Types(types ...string) LookupOption {
	return func(o *request.Options) { o.BiolinkTypes = append(o.BiolinkTypes, types...) }
}

// OnlyPrefixes restricts results to CURIE prefixes, e.g. "MONDO|EFO".
func OnlyPrefixes(prefixes string) LookupOption {
	return func(o *request.Options) { o.OnlyPrefixes = prefixes }
}

// ExcludePrefixes drops results with these CURIE prefixes, e.g. "UMLS".
func ExcludePrefixes(prefixes string) LookupOption {
	return func(o *request.Options) { o.ExcludePrefixes = prefixes }
}

// OnlyTaxa restricts results to taxa, e.g. "NCBITaxon:9606".
func OnlyTaxa(taxa string) LookupOption {
	return func(o *request.Options) { o.OnlyTaxa = taxa }
}

// Debug requests engine debug output: none, query, timing, results or all.
func Debug(level string) LookupOption {
	return func(o *request.Options) { o.Debug = level }
}

func lookupParams(opts []LookupOption) (request.Params, error) {
	o := request.Options{Limit: request.DefaultLimit}
	for _, opt := range opts {
		opt(&o)
	}
	return request.NewParams(o)
}
