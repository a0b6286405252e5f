package main

import "github.com/spf13/cobra"

func (a *app) newSynonymsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "synonyms <curie>...",
		Aliases: []string{"reverse-lookup"},
		Short:   "Print the indexed document for each preferred CURIE",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := a.synonyms.Lookup(a.ctx(cmd), args)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), docs)
		},
	}
}
