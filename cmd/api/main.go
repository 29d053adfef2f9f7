package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"furniturehub/internal/config"
	"furniturehub/internal/database"
	"furniturehub/internal/handler"
	"furniturehub/internal/repository"
	"furniturehub/internal/router"
	"furniturehub/internal/seed"
	"furniturehub/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting furniturehub API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	wishlistRepo := repository.NewWishlistRepository(pool, logger)
	notificationRepo := repository.NewNotificationRepository(pool, logger)

	// Import catalogue seed files when enabled
	if cfg.Seed.Enabled {
		if err := importSeed(ctx, cfg.Seed, pool, logger); err != nil {
			return fmt.Errorf("failed to import seed data: %w", err)
		}
	}

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, categoryRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, cartRepo, userRepo, notificationRepo, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, cartService, logger)
	notificationService := service.NewNotificationService(notificationRepo, logger)
	userService := service.NewUserService(userRepo, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(catalogService, logger)
	categoryHandler := handler.NewCategoryHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	wishlistHandler := handler.NewWishlistHandler(wishlistService, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, logger)
	userHandler := handler.NewUserHandler(userService, logger)

	// Initialize router
	mux := router.New(
		productHandler,
		categoryHandler,
		cartHandler,
		orderHandler,
		wishlistHandler,
		notificationHandler,
		userHandler,
		userRepo,
		logger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// importSeed loads each configured seed file, preferring S3 when enabled,
// and upserts the records into the catalogue.
func importSeed(ctx context.Context, cfg config.SeedConfig, pool *pgxpool.Pool, logger zerolog.Logger) error {
	fileLoader := seed.NewFileLoader(logger)
	loader := fileLoader

	if cfg.S3.Enabled {
		s3Loader, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			loader = seed.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)
		}
	}

	importer := seed.NewImporter(pool, logger)

	for _, file := range strings.Split(cfg.Files, ",") {
		file = strings.TrimSpace(file)
		if file == "" {
			continue
		}

		records, err := loader.Load(ctx, file)
		if err != nil {
			return err
		}

		if err := importer.Import(ctx, records); err != nil {
			return err
		}
	}

	return nil
}
