package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/systmms/secretgrep/internal/config"
	dserrors "github.com/systmms/secretgrep/internal/errors"
	"github.com/systmms/secretgrep/internal/kv"
	"github.com/systmms/secretgrep/internal/render"
)

// EnvSecrets supplies identifiers for get when none are given as arguments
// (comma-separated).
const EnvSecrets = "SECRETGREP_SECRETS"

func NewGetCommand(cfg *config.Config) *cobra.Command {
	var grepPattern string

	cmd := &cobra.Command{
		Use:   "get <identifier>...",
		Short: "Fetch one or more secrets and print their keys and values",
		Long: `Retrieve secrets by identifier and display their key-value contents.

A single identifier is fetched directly; several identifiers are fetched
concurrently and either all succeed or the command fails. Identifiers may
also come from the ` + EnvSecrets + ` environment variable (comma-separated)
when no arguments are given.

With --grep, instead of printing the contents, run a substring search over
the fetched secrets' identifiers and keys.

Examples:
  secretgrep get app-config
  secretgrep get app-config app-urls --format json
  secretgrep get app-config --grep db
  SECRETGREP_SECRETS=app-config,app-urls secretgrep get`,
		RunE: func(cmd *cobra.Command, args []string) error {
			identifiers := args
			if len(identifiers) == 0 {
				if raw := os.Getenv(EnvSecrets); raw != "" {
					for _, id := range strings.Split(raw, ",") {
						if id = strings.TrimSpace(id); id != "" {
							identifiers = append(identifiers, id)
						}
					}
				}
			}
			if len(identifiers) == 0 {
				return dserrors.UserError{
					Message:    "No secret identifiers given",
					Suggestion: "Pass identifiers as arguments or set " + EnvSecrets,
				}
			}

			client, storeCfg, format, err := setup(cfg)
			if err != nil {
				return err
			}

			fetcher := newFetcher(cfg, client, storeCfg)
			ctx := context.Background()

			// Single identifier without --grep: fetch directly and print
			// the record, bypassing the aggregator.
			if len(identifiers) == 1 && !cmd.Flags().Changed("grep") {
				record, err := fetcher.Fetch(ctx, identifiers[0])
				if err != nil {
					return err
				}
				return render.Record(os.Stdout, format, record)
			}

			aggregator := kv.NewAggregator(fetcher, cfg.Logger)
			secretStore, err := aggregator.FetchAll(ctx, identifiers)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("grep") {
				mode := kv.LabelQualified
				if len(identifiers) == 1 {
					mode = kv.LabelBare
				}
				matches, err := kv.Search(secretStore, grepPattern, mode)
				if err != nil {
					return err
				}
				return render.Matches(os.Stdout, format, matches)
			}

			return render.Store(os.Stdout, format, secretStore)
		},
	}

	cmd.Flags().StringVar(&grepPattern, "grep", "", "Search the fetched secrets instead of printing them")

	return cmd
}
