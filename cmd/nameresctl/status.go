package main

import (
	"github.com/spf13/cobra"

	chiTransport "github.com/kailas-cloud/nameres/internal/transport/chi"
)

func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report core statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := a.status.Status(a.ctx(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), chiTransport.StatusBody(rep))
		},
	}
}
