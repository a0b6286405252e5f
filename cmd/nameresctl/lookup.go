package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/nameres/internal/domain/lookup/request"
	chiTransport "github.com/kailas-cloud/nameres/internal/transport/chi"
)

// lookupFlags mirrors the /lookup query parameters.
type lookupFlags struct {
	autocomplete    bool
	highlighting    bool
	offset          int
	limit           int
	biolinkTypes    []string
	onlyPrefixes    string
	excludePrefixes string
	onlyTaxa        string
	debug           string
}

func (f *lookupFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVarP(&f.autocomplete, "autocomplete", "a", false, "treat the input as an incomplete phrase")
	fs.BoolVar(&f.highlighting, "highlighting", false, "report which labels and synonyms matched")
	fs.IntVar(&f.offset, "offset", 0, "number of results to skip")
	fs.IntVarP(&f.limit, "limit", "n", request.DefaultLimit, "number of results to return (0-1000)")
	fs.StringSliceVarP(&f.biolinkTypes, "type", "t", nil, "Biolink type to filter to, repeatable")
	fs.StringVar(&f.onlyPrefixes, "only-prefixes", "", "pipe-separated prefixes to keep, e.g. MONDO|EFO")
	fs.StringVar(&f.excludePrefixes, "exclude-prefixes", "", "pipe-separated prefixes to drop, e.g. UMLS")
	fs.StringVar(&f.onlyTaxa, "only-taxa", "", "pipe-separated taxa, e.g. NCBITaxon:9606")
	fs.StringVar(&f.debug, "debug", "", "engine debug level: none, query, timing, results, all")
}

func (f *lookupFlags) options() request.Options {
	return request.Options{
		Autocomplete:    f.autocomplete,
		Highlighting:    f.highlighting,
		Offset:          f.offset,
		Limit:           f.limit,
		BiolinkTypes:    f.biolinkTypes,
		OnlyPrefixes:    f.onlyPrefixes,
		ExcludePrefixes: f.excludePrefixes,
		OnlyTaxa:        f.onlyTaxa,
		Debug:           f.debug,
	}
}

func (a *app) newLookupCmd() *cobra.Command {
	var f lookupFlags
	cmd := &cobra.Command{
		Use:   "lookup <string>",
		Short: "Look up cliques for a name or synonym",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := request.New(args[0], f.options())
			if err != nil {
				return err
			}
			results, err := a.lookup.Lookup(a.ctx(cmd), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), chiTransport.ToLookupResults(results))
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newBulkCmd() *cobra.Command {
	var f lookupFlags
	cmd := &cobra.Command{
		Use:   "bulk <string>...",
		Short: "Look up several names at once, keyed by input string",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := request.NewParams(f.options())
			if err != nil {
				return err
			}
			byText, err := a.lookup.BulkLookup(a.ctx(cmd), args, params)
			if err != nil {
				return err
			}
			out := make(map[string][]chiTransport.LookupResult, len(byText))
			for text, results := range byText {
				out[text] = chiTransport.ToLookupResults(results)
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	f.register(cmd)
	return cmd
}
