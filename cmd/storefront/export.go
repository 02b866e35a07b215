package main

import (
	"fmt"
	"os"

	"cloud.google.com/go/spanner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
	"github.com/murkotick/storefront-service/internal/config"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
	"github.com/murkotick/storefront-service/internal/wiring"
)

func newExportCmd(cfg *config.Config) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <collection>",
		Short: "Write a catalog collection (products, slides or videos) to a Parquet file",
		Example: `  storefront export products
  storefront export videos -o videos.parquet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collection := args[0]
			if !catalog.IsCatalogCollection(collection) {
				return fmt.Errorf("%w: %q", catalog.ErrUnknownCollection, collection)
			}
			if out == "" {
				out = collection + ".parquet"
			}

			ctx := cmd.Context()
			client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
			if err != nil {
				return fmt.Errorf("spanner.NewClient: %w", err)
			}
			defer client.Close()

			app := wiring.Build(wiring.Deps{Store: docstore.NewSpannerStore(client, clock.RealClock{})})

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			n, err := app.Export.Execute(ctx, collection, f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			log.Info().Str("file", out).Int("rows", n).Msg("export written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default <collection>.parquet)")
	return cmd
}
