package main

import (
	"fmt"

	"github.com/philly/folio/internal/importer"
	"github.com/philly/folio/internal/platform/eventbus"
	"github.com/philly/folio/internal/platform/logger"
	"github.com/philly/folio/internal/posts/application"
	"github.com/philly/folio/internal/posts/domain"
	"github.com/philly/folio/internal/server"
	taxonomyapp "github.com/philly/folio/internal/taxonomy/application"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import posts from exports into the configured storage",
		Long: `Loads posts from a firestore JSON export and/or a directory of markdown
files and stores them in the storage selected by STORAGE_DRIVER. Posts are
matched by ID, then by slug, so running an import twice updates instead of
duplicating. Tag and category counts are recomputed as posts land.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := src.sources()
			if err != nil {
				return err
			}

			config, err := server.LoadConfig(logger.NewBootstrapLogger())
			if err != nil {
				return err
			}
			log, flush := logger.NewConfiguredLogger(logger.Config{
				Environment: config.Environment,
				LogLevel:    config.LogLevel,
				Backend:     config.LogBackend,
				File:        config.LogFile,
			})
			defer flush()

			ctx := cmd.Context()
			storage, closeStorage, err := server.OpenStorage(ctx, config, log)
			if err != nil {
				return err
			}
			defer closeStorage()

			bus := eventbus.NewBus(log)
			defer bus.Wait()
			site := domain.Site{URL: config.SiteURL, DefaultOGImage: config.OGDefaultImage}
			service := application.NewPostsService(storage.Posts, bus, log, site)
			// Subscribes to the post events the import publishes
			taxonomyapp.NewTaxonomyService(storage.Tags, storage.Categories,
				taxonomyapp.NewPostTermsAdapter(storage.Posts), bus, log)

			report, err := importer.NewOrchestrator(log, service, sources).RunAll(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "created %d, updated %d, failed %d\n",
				report.Created, report.Updated, report.Failed)
			return err
		},
	}

	src.register(cmd)
	return cmd
}
