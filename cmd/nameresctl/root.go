package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nameres/internal/config"
	logpkg "github.com/kailas-cloud/nameres/internal/logger"
	lookuprepo "github.com/kailas-cloud/nameres/internal/repository/lookup"
	synonymsrepo "github.com/kailas-cloud/nameres/internal/repository/synonyms"
	"github.com/kailas-cloud/nameres/internal/transport/solr"
	lookupuc "github.com/kailas-cloud/nameres/internal/usecase/lookup"
	statusuc "github.com/kailas-cloud/nameres/internal/usecase/status"
	synonymsuc "github.com/kailas-cloud/nameres/internal/usecase/synonyms"
	"github.com/kailas-cloud/nameres/internal/version"
)

// app holds the services a subcommand runs against.
// It is built lazily so that "version" works without configuration.
type app struct {
	env     string
	solrURL string
	verbose bool

	logger   *zap.Logger
	lookup   *lookupuc.Service
	synonyms *synonymsuc.Service
	status   *statusuc.Service
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "nameresctl",
		Short:         "Query the name resolution index",
		Long:          `Resolve biomedical names to clique identifiers, fetch synonyms and report index status directly against Solr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.env, "env", config.GetEnv(), "configuration environment (config/<env>.yaml)")
	root.PersistentFlags().StringVar(&a.solrURL, "solr-url", "", "override solr.url from the configuration")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log queries and timings to stderr")

	root.AddCommand(
		a.newLookupCmd(),
		a.newBulkCmd(),
		a.newSynonymsCmd(),
		a.newStatusCmd(),
		newVersionCmd(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.solrURL != "" {
		cfg.Solr.URL = a.solrURL
	}

	a.logger = zap.NewNop()
	if a.verbose {
		if a.logger, err = logpkg.NewLogger(a.env, cfg.Logging.Level); err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
	}

	client := solr.NewClient(&solr.Config{
		BaseURL: cfg.Solr.URL,
		Core:    cfg.Solr.Core,
		Timeout: cfg.Solr.Timeout(),
		Logger:  a.logger,
	})
	a.lookup = lookupuc.New(lookuprepo.New(client), cfg.Lookup.BulkConcurrency)
	a.synonyms = synonymsuc.New(synonymsrepo.New(client))
	a.status = statusuc.New(client, cfg.Solr.StatusCore, statusuc.Metadata{
		BabelVersion:    cfg.Metadata.BabelVersion,
		BabelVersionURL: cfg.Metadata.BabelVersionURL,
		BiolinkModelTag: cfg.Metadata.BiolinkModelTag,
		BiolinkModelURL: cfg.Metadata.BiolinkModelURL,
		NameResVersion:  version.Version,
	})
	return nil
}

func (a *app) ctx(cmd *cobra.Command) context.Context {
	return logpkg.ContextWithLogger(cmd.Context(), a.logger)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
