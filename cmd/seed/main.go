package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/athul0622-dotcom/local-service/internal/adapters/catalog"
	"github.com/athul0622-dotcom/local-service/internal/application/services"
	"github.com/athul0622-dotcom/local-service/internal/domain/repositories"
	"github.com/athul0622-dotcom/local-service/internal/infrastructure/clients/postgres"
	"github.com/athul0622-dotcom/local-service/internal/infrastructure/observability"
	"github.com/athul0622-dotcom/local-service/pkg/config"
	"github.com/athul0622-dotcom/local-service/pkg/retry"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type seedOptions struct {
	catalogPath string
	dryRun      bool
	timeout     time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Copy a provider catalog into PostgreSQL",
		Long: `seed validates a JSON provider catalog and inserts it into the
service_providers and provider_reviews tables, creating them if needed.
Rows that already exist are left untouched, so the command can be rerun.

Without --catalog the catalog bundled with the API is used.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "path to a catalog JSON file (default: embedded catalog)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate the catalog without connecting to the database")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall timeout")

	return cmd
}

func catalogSource(path string) repositories.CatalogSource {
	if path == "" {
		return catalog.NewEmbeddedSource()
	}
	return catalog.NewFileSource(path)
}

func runSeed(parent context.Context, opts *seedOptions) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	observability.InitLogger("local-service-seed", cfg.App.Env, cfg.App.LogLevel)
	logger := observability.GetLogger()

	ctx, cancel := context.WithTimeout(parent, opts.timeout)
	defer cancel()

	loaded, err := services.LoadCatalog(ctx, catalogSource(opts.catalogPath), retry.Config{MaxAttempts: 1})
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	if opts.dryRun {
		logger.Info().
			Int("providers", len(loaded.Providers)).
			Int("reviews", len(loaded.Reviews)).
			Msg("catalog is valid, nothing written")
		return nil
	}

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pgClient.Close()

	if err := catalog.NewPostgresSource(pgClient).Seed(ctx, loaded.Providers, loaded.Reviews); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	logger.Info().
		Int("providers", len(loaded.Providers)).
		Int("reviews", len(loaded.Reviews)).
		Str("database", cfg.Database.Database).
		Msg("catalog seeded")
	return nil
}
