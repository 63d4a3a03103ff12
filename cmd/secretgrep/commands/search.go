package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/secretgrep/internal/config"
	"github.com/systmms/secretgrep/internal/kv"
	"github.com/systmms/secretgrep/internal/render"
)

func NewSearchCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "search <pattern>",
		Short: "Search secret identifiers and keys across the whole store",
		Long: `List every secret in the store, fetch them all concurrently, then run a
literal, case-sensitive substring search at two levels: secret identifiers
and the keys inside each secret.

A matching identifier produces a "[Secret] <identifier>" entry with its key
count; a matching key produces an "<identifier>/<key>" entry with the key's
value. Output is ordered by identifier, then by key. The command fails with
a non-zero exit status when nothing matches.

Examples:
  secretgrep search db
  secretgrep search api_key --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := args[0]

			client, storeCfg, format, err := setup(cfg)
			if err != nil {
				return err
			}

			ctx := context.Background()
			identifiers, err := kv.ListIdentifiers(ctx, client)
			if err != nil {
				return err
			}

			fetcher := newFetcher(cfg, client, storeCfg)
			aggregator := kv.NewAggregator(fetcher, cfg.Logger)
			secretStore, err := aggregator.FetchAll(ctx, identifiers)
			if err != nil {
				return err
			}

			matches, err := kv.Search(secretStore, pattern, kv.LabelQualified)
			if err != nil {
				return err
			}
			return render.Matches(os.Stdout, format, matches)
		},
	}
}
