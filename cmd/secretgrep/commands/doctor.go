package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/systmms/secretgrep/internal/config"
	"github.com/systmms/secretgrep/internal/stores"
)

func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and store connectivity",
		Long: `Verify that secretgrep can do its job: the configuration file parses and
validates, the selected store's client can be built, and the store answers
a credentials check. For AWS-backed stores the caller identity is resolved
via STS and reported.

Examples:
  secretgrep doctor
  secretgrep doctor --store prod`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}
			cfg.Logger.Info("configuration OK (%s)", cfg.Path)

			name, storeCfg, err := cfg.SelectStore()
			if err != nil {
				return err
			}

			client, err := buildClient(cfg, name, storeCfg)
			if err != nil {
				return err
			}
			cfg.Logger.Info("store '%s' (type %s) client built", name, storeCfg.Type)

			ctx := context.Background()
			if err := client.Validate(ctx); err != nil {
				return err
			}
			cfg.Logger.Info("store '%s' connectivity OK", name)

			if stores.IsAWSType(storeCfg.Type) && cfg.NewClient == nil {
				identity, err := stores.NewSTSIdentity(stores.Region(storeCfg))
				if err != nil {
					return err
				}
				arn, err := identity.WhoAmI(ctx)
				if err != nil {
					return err
				}
				cfg.Logger.Info("AWS caller identity: %s", arn)
			}

			return nil
		},
	}
}
