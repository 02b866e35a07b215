package main

import (
	"github.com/spf13/cobra"

	"github.com/murkotick/storefront-service/internal/config"
	"github.com/murkotick/storefront-service/internal/pkg/logging"
)

func newRootCmd() *cobra.Command {
	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:          "storefront",
		Short:        "Storefront catalog, commerce and back-office service",
		SilenceUsage: true,
		// Subcommands share cfg, filled once flags are parsed.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			*cfg = *config.Load()
			logging.Setup(cfg.LoggingConfig.Level, cfg.LoggingConfig.Format)
		},
	}

	cmd.AddCommand(
		newServeCmd(cfg),
		newMigrateCmd(cfg),
		newExportCmd(cfg),
		newTokenCmd(cfg),
	)
	return cmd
}
