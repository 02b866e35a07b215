package main

import (
	"context"
	"fmt"
	"os"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/murkotick/storefront-service/internal/config"
	"github.com/murkotick/storefront-service/migrations"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the document store schema to a Spanner database",
		Long: `Applies the embedded DDL (or the statements of --file) to SPANNER_DATABASE.
Set SPANNER_EMULATOR_HOST to target the local emulator.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			stmts, err := readDDLStatements(file)
			if err != nil {
				return fmt.Errorf("read DDL: %w", err)
			}
			if len(stmts) == 0 {
				return fmt.Errorf("no DDL statements found")
			}
			return migrate(ctx, cfg.SpannerDatabase, stmts)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "DDL script to apply instead of the embedded migrations")
	return cmd
}

func migrate(ctx context.Context, db string, stmts []string) error {
	client, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("database admin client: %w", err)
	}
	defer client.Close()

	op, err := client.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   db,
		Statements: stmts,
	})
	if err != nil {
		return fmt.Errorf("UpdateDatabaseDdl: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("UpdateDatabaseDdl wait: %w", err)
	}

	log.Info().Int("statements", len(stmts)).Str("database", db).Msg("schema applied")
	return nil
}

func readDDLStatements(path string) ([]string, error) {
	if path == "" {
		return migrations.Statements()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return migrations.SplitDDL(string(b)), nil
}
