package chi

import (
	"net/http"

	"github.com/go-openapi/spec"

	"github.com/kailas-cloud/nameres/internal/domain/lookup/debug"
	"github.com/kailas-cloud/nameres/internal/domain/lookup/request"
)

const (
	tagLookup = "lookup"
	tagStatus = "status"
)

// OpenAPI builds the Swagger 2.0 document served at /openapi.json.
func OpenAPI(version string) *spec.Swagger {
	return &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger:  "2.0",
			Consumes: []string{"application/json"},
			Produces: []string{"application/json"},
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       "Name Resolver",
					Description: "Resolves biomedical names and synonyms to normalized clique identifiers.",
					Version:     version,
				},
			},
			Tags: []spec.Tag{
				{TagProps: spec.TagProps{Name: tagLookup, Description: "Name and synonym lookup"}},
				{TagProps: spec.TagProps{Name: tagStatus, Description: "Instance status"}},
			},
			Definitions: spec.Definitions{
				"LookupResult":  lookupResultSchema(),
				"ErrorResponse": errorResponseSchema(),
				"BulkLookupRequest": *objectSchema(map[string]*spec.Schema{
					"strings":          spec.ArrayProperty(spec.StringProperty()),
					"autocomplete":     spec.BoolProperty(),
					"highlighting":     spec.BoolProperty(),
					"offset":           spec.Int64Property(),
					"limit":            spec.Int64Property(),
					"biolink_types":    spec.ArrayProperty(spec.StringProperty()),
					"only_prefixes":    spec.StringProperty(),
					"exclude_prefixes": spec.StringProperty(),
					"only_taxa":        spec.StringProperty(),
					"debug":            debugSchema(),
				}).WithRequired("strings"),
				"SynonymsRequest": *objectSchema(map[string]*spec.Schema{
					"preferred_curies": spec.ArrayProperty(spec.StringProperty()),
				}).WithRequired("preferred_curies"),
				"ReverseLookupRequest": *objectSchema(map[string]*spec.Schema{
					"curies": spec.ArrayProperty(spec.StringProperty()),
				}).WithRequired("curies"),
			},
			Paths: &spec.Paths{Paths: map[string]spec.PathItem{
				"/lookup": {PathItemProps: spec.PathItemProps{
					Get:  lookupOperation("lookupGet"),
					Post: lookupOperation("lookupPost"),
				}},
				"/bulk-lookup": {PathItemProps: spec.PathItemProps{
					Post: spec.NewOperation("bulkLookup").
						WithTags(tagLookup).
						WithSummary("Look up cliques for multiple names or synonyms.").
						AddParam(spec.BodyParam("body", spec.RefSchema("#/definitions/BulkLookupRequest")).AsRequired()).
						RespondsWith(http.StatusOK, spec.NewResponse().
							WithDescription("Results keyed by input string").
							WithSchema(spec.MapProperty(spec.ArrayProperty(spec.RefSchema("#/definitions/LookupResult"))))).
						RespondsWith(http.StatusBadRequest, errorResponse("Invalid request")).
						RespondsWith(http.StatusBadGateway, errorResponse("Search engine error")),
				}},
				"/synonyms": {PathItemProps: spec.PathItemProps{
					Get: synonymsOperation("synonymsGet", "preferred_curies", false).
						AddParam(curieListParam("preferred_curies")),
					Post: synonymsOperation("synonymsPost", "preferred_curies", false).
						AddParam(spec.BodyParam("body", spec.RefSchema("#/definitions/SynonymsRequest")).AsRequired()),
				}},
				"/reverse_lookup": {PathItemProps: spec.PathItemProps{
					Get: synonymsOperation("reverseLookupGet", "curies", true).
						AddParam(curieListParam("curies")),
					Post: synonymsOperation("reverseLookupPost", "curies", true).
						AddParam(spec.BodyParam("body", spec.RefSchema("#/definitions/ReverseLookupRequest")).AsRequired()),
				}},
				"/status": {PathItemProps: spec.PathItemProps{
					Get: spec.NewOperation("status").
						WithTags(tagStatus).
						WithSummary("Get status and counts for this instance.").
						RespondsWith(http.StatusOK, spec.NewResponse().
							WithDescription("Core status").
							WithSchema(spec.MapProperty(nil))),
				}},
				"/health": {PathItemProps: spec.PathItemProps{
					Get: spec.NewOperation("health").
						WithTags(tagStatus).
						WithSummary("Check dependency health.").
						RespondsWith(http.StatusOK, spec.NewResponse().WithDescription("All dependencies reachable")).
						RespondsWith(http.StatusServiceUnavailable, spec.NewResponse().WithDescription("Degraded")),
				}},
			}},
		},
	}
}

func lookupOperation(id string) *spec.Operation {
	levels := make([]any, len(debug.Levels))
	for i, l := range debug.Levels {
		levels[i] = string(l)
	}

	return spec.NewOperation(id).
		WithTags(tagLookup).
		WithSummary("Look up cliques for a fragment of a name or synonym.").
		AddParam(spec.QueryParam("string").Typed("string", "").AsRequired().
			WithDescription("The string to search for.")).
		AddParam(spec.QueryParam("autocomplete").Typed("boolean", "").WithDefault(false).
			WithDescription("Is the input string incomplete (autocomplete=true) or a complete phrase?")).
		AddParam(spec.QueryParam("highlighting").Typed("boolean", "").WithDefault(false).
			WithDescription("Return information on which labels and synonyms matched the search query?")).
		AddParam(spec.QueryParam("offset").Typed("integer", "").WithDefault(0).WithMinimum(0, false).
			WithDescription("The number of results to skip.")).
		AddParam(spec.QueryParam("limit").Typed("integer", "").WithDefault(request.DefaultLimit).
			WithMinimum(0, false).WithMaximum(request.MaxLimit, false).
			WithDescription("The number of results to return.")).
		AddParam(spec.QueryParam("biolink_type").CollectionOf(spec.NewItems().Typed("string", ""), "multi").
			WithDescription("Biolink Model types to filter to, with or without the biolink: prefix. Combined with OR.")).
		AddParam(spec.QueryParam("only_prefixes").Typed("string", "").
			WithDescription("Pipe-separated, case-sensitive list of prefixes to filter to, e.g. MONDO|EFO.")).
		AddParam(spec.QueryParam("exclude_prefixes").Typed("string", "").
			WithDescription("Pipe-separated, case-sensitive list of prefixes to exclude, e.g. UMLS|EFO.")).
		AddParam(spec.QueryParam("only_taxa").Typed("string", "").
			WithDescription("Pipe-separated, case-sensitive list of taxa to filter, e.g. NCBITaxon:9606|NCBITaxon:10090.")).
		AddParam(spec.QueryParam("debug").Typed("string", "").WithEnum(levels...).WithDefault(string(debug.None)).
			WithDescription("Search engine debug information to include.")).
		RespondsWith(http.StatusOK, spec.NewResponse().
			WithDescription("Matching cliques ordered by score").
			WithSchema(spec.ArrayProperty(spec.RefSchema("#/definitions/LookupResult")))).
		RespondsWith(http.StatusBadRequest, errorResponse("Invalid request")).
		RespondsWith(http.StatusBadGateway, errorResponse("Search engine error"))
}

func synonymsOperation(id, field string, deprecated bool) *spec.Operation {
	op := spec.NewOperation(id).
		WithTags(tagLookup).
		WithSummary("Look up synonyms for a CURIE.").
		WithDescription("Returns the indexed document for each " + field + " entry; unknown CURIEs map to {}.").
		RespondsWith(http.StatusOK, spec.NewResponse().
			WithDescription("Documents keyed by CURIE").
			WithSchema(spec.MapProperty(spec.MapProperty(nil)))).
		RespondsWith(http.StatusBadRequest, errorResponse("Invalid request")).
		RespondsWith(http.StatusBadGateway, errorResponse("Search engine error"))
	if deprecated {
		op.Deprecate()
	}
	return op
}

func curieListParam(name string) *spec.Parameter {
	return spec.QueryParam(name).
		CollectionOf(spec.NewItems().Typed("string", ""), "multi").
		AsRequired().
		WithDescription("A list of CURIEs to look up synonyms for.")
}

func errorResponse(description string) *spec.Response {
	return spec.NewResponse().
		WithDescription(description).
		WithSchema(spec.RefSchema("#/definitions/ErrorResponse"))
}

func objectSchema(props map[string]*spec.Schema) *spec.Schema {
	s := new(spec.Schema).Typed("object", "")
	for name, p := range props {
		s.SetProperty(name, *p)
	}
	return s
}

func debugSchema() *spec.Schema {
	s := spec.StringProperty()
	for _, l := range debug.Levels {
		s.Enum = append(s.Enum, string(l))
	}
	return s
}

func lookupResultSchema() spec.Schema {
	return *objectSchema(map[string]*spec.Schema{
		"curie":                   spec.StringProperty(),
		"label":                   spec.StringProperty(),
		"highlighting":            spec.MapProperty(spec.ArrayProperty(spec.StringProperty())),
		"synonyms":                spec.ArrayProperty(spec.StringProperty()),
		"taxa":                    spec.ArrayProperty(spec.StringProperty()),
		"types":                   spec.ArrayProperty(spec.StringProperty()),
		"score":                   spec.Float64Property(),
		"clique_identifier_count": spec.Int64Property(),
		"explain":                 new(spec.Schema).WithDescription("Score explanation for this result"),
		"debug":                   spec.MapProperty(nil).WithDescription("Debug information for the entire query"),
	}).WithRequired("curie", "label", "highlighting", "synonyms", "taxa", "types", "score", "clique_identifier_count")
}

func errorResponseSchema() spec.Schema {
	return *objectSchema(map[string]*spec.Schema{
		"code":            spec.StringProperty(),
		"message":         spec.StringProperty(),
		"upstream_status": spec.Int64Property(),
	}).WithRequired("code", "message")
}
