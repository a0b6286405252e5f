// Package nameres provides an in-process Go client for biomedical name
// resolution over a Solr name_lookup index.
//
// It runs the same query construction and result shaping as the HTTP
// service, without the HTTP hop:
//
//	client, _ := nameres.New(ctx, nameres.WithSolr("http://localhost:8983", "name_lookup"))
//	defer client.Close()
//
//	results, _ := client.Lookup(ctx, "beta-secretase",
//	    nameres.Limit(5),
//	    nameres.Types("Gene"),
//	    nameres.OnlyTaxa("NCBITaxon:9606"),
//	)
//	docs, _ := client.Synonyms(ctx, "MONDO:0005737")
//
// A Redis or Valkey response cache can be placed in front of Solr with WithCache.
package nameres
