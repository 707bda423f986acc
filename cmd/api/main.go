package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/athul0622-dotcom/local-service/internal/adapters/cache"
	"github.com/athul0622-dotcom/local-service/internal/adapters/catalog"
	"github.com/athul0622-dotcom/local-service/internal/adapters/events"
	"github.com/athul0622-dotcom/local-service/internal/adapters/memory"
	"github.com/athul0622-dotcom/local-service/internal/api/handlers"
	"github.com/athul0622-dotcom/local-service/internal/api/middleware"
	"github.com/athul0622-dotcom/local-service/internal/api/routes"
	"github.com/athul0622-dotcom/local-service/internal/application/services"
	"github.com/athul0622-dotcom/local-service/internal/domain/providers"
	"github.com/athul0622-dotcom/local-service/internal/domain/repositories"
	"github.com/athul0622-dotcom/local-service/internal/infrastructure/clients/postgres"
	"github.com/athul0622-dotcom/local-service/internal/infrastructure/clients/redis"
	"github.com/athul0622-dotcom/local-service/internal/infrastructure/observability"
	queryservices "github.com/athul0622-dotcom/local-service/internal/query/services"
	"github.com/athul0622-dotcom/local-service/pkg/config"
	"github.com/athul0622-dotcom/local-service/pkg/retry"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.App.Env, cfg.App.LogLevel)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Catalog
	source, closeSource, err := openCatalogSource(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("source", cfg.Catalog.Source).Msg("failed to open catalog source")
	}
	loaded, err := services.LoadCatalog(ctx, source, retry.DefaultConfig())
	closeSource()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load catalog")
	}

	catalogStore, err := memory.NewCatalogStore(loaded.Providers)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid catalog")
	}
	reviewLog, err := memory.NewReviewLog(loaded.Reviews)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid seed reviews")
	}

	ratingPolicy, err := services.RatingPolicyByName(cfg.Catalog.RatingPolicy)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid rating policy")
	}

	// Redis is optional: rate limiting and dedup fall back to in-process
	// state and no events are published without it
	var (
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
		eventLogger   *services.ListingEventLogger
	)
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, continuing without cache and events")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			eventBus = events.NewRedisEventBus(redisClient)

			eventLogger = services.NewListingEventLogger(eventBus)
			if err := eventLogger.Start(); err != nil {
				logger.Warn().Err(err).Msg("failed to start listing event logger")
				eventLogger = nil
			}
		}
	}

	// Services
	listingService := queryservices.NewListingQueryService(catalogStore, metrics)
	profileService := services.NewProfileService(catalogStore, reviewLog, ratingPolicy)
	reviewService := services.NewReviewService(catalogStore, reviewLog, metrics)
	if eventBus != nil {
		reviewService.SetEventBus(eventBus)
	}
	bookingService := services.NewBookingService(catalogStore, eventBus, metrics)

	// HTTP
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, nil)
	}

	router := routes.NewRouter(
		handlers.NewProviderHandler(listingService, profileService),
		handlers.NewReviewHandler(reviewService, cacheProvider),
		handlers.NewBookingHandler(bookingService),
		cacheMiddleware,
		cfg.Server.AllowedOrigins,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", serverAddr).
			Int("providers", catalogStore.Len()).
			Str("rating_policy", cfg.Catalog.RatingPolicy).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	if eventLogger != nil {
		eventLogger.Stop()
	}
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing event bus")
		}
	}

	logger.Info().Msg("server stopped")
}

// openCatalogSource returns the configured catalog source and a function
// releasing its resources once the catalog is loaded
func openCatalogSource(ctx context.Context, cfg *config.Config) (repositories.CatalogSource, func(), error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		return catalog.NewFileSource(cfg.Catalog.Path), func() {}, nil
	case config.CatalogSourcePostgres:
		pgClient, err := postgres.NewClient(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewPostgresSource(pgClient), func() { pgClient.Close() }, nil
	default:
		return catalog.NewEmbeddedSource(), func() {}, nil
	}
}
