package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"sjsage522/pricewatcher/config"
	"sjsage522/pricewatcher/internal/dashboard"
	"sjsage522/pricewatcher/internal/extractor"
	"sjsage522/pricewatcher/internal/fetcher"
	"sjsage522/pricewatcher/internal/monitor"
	"sjsage522/pricewatcher/internal/registry"
	"sjsage522/pricewatcher/logger"
	"sjsage522/pricewatcher/services/cache"
	"sjsage522/pricewatcher/services/notifier"
	"sjsage522/pricewatcher/services/publisher"
	"sjsage522/pricewatcher/services/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("products_file", cfg.ProductsFile).
		Dur("check_interval", cfg.CheckInterval).
		Bool("notifications", cfg.NotificationsEnabled()).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize services
	services := initializeServices(&cfg)
	defer services.Cleanup()

	priceStore := store.NewFileStore(cfg.ProductsFile)
	pageFetcher := fetcher.NewHTTPFetcher(cfg.FetchTimeout, services.Cache)
	pageExtractor := extractor.NewPageExtractor()

	mon := monitor.New(priceStore, pageFetcher, pageExtractor, services.Notifier, services.Publisher, cfg.CheckInterval)
	reg := registry.New(priceStore, pageFetcher, pageExtractor, services.Notifier, services.Publisher)

	// Start the monitor
	go mon.Run(ctx)

	// Start the dashboard
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: dashboard.NewRouter(reg, cfg.Environment),
	}

	serverDone := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting dashboard")
		serverDone <- server.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	case err := <-serverDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Dashboard exited with error")
		}
		cancel()
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Dashboard shutdown failed")
	}
}

// Services holds all the initialized services
type Services struct {
	Cache     cache.CacheService
	Notifier  notifier.Notifier
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
}

// initializeServices initializes all required services
func initializeServices(cfg *config.Config) *Services {
	services := &Services{}

	// Initialize cooldown cache
	if cfg.MemcacheAddr != "" {
		services.Cache = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Infof("Connected to Memcache at %s", cfg.MemcacheAddr)
	} else {
		services.Cache = cache.NewLocalCache()
	}

	// Initialize notifier
	services.Notifier = notifier.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.TelegramAPIURL)

	// Initialize event publisher
	if cfg.RedisAddr != "" {
		services.Publisher = publisher.NewRedisPublisher(
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamMaxLength,
		)
		logger.Infof("Connected to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	} else {
		services.Publisher = publisher.NewNoopPublisher()
	}

	return services
}
