package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/secretgrep/internal/config"
	"github.com/systmms/secretgrep/internal/kv"
	"github.com/systmms/secretgrep/internal/render"
)

func NewListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all secret identifiers in the store",
		Long: `Enumerate every secret identifier the configured store knows about.

Identifiers are printed in the order the store returns them, one per line
(or as a JSON array with --format json).

Examples:
  secretgrep list
  secretgrep list --store prod --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, format, err := setup(cfg)
			if err != nil {
				return err
			}

			identifiers, err := kv.ListIdentifiers(context.Background(), client)
			if err != nil {
				return err
			}

			cfg.Logger.Debug("store %s returned %d identifiers", client.Name(), len(identifiers))
			return render.Identifiers(os.Stdout, format, identifiers)
		},
	}
}
