package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KlimZavadski/granica-bot/internal/infrastructure/config"
	"github.com/KlimZavadski/granica-bot/internal/infrastructure/persistence"
	"github.com/KlimZavadski/granica-bot/internal/interface/repository"
	"github.com/KlimZavadski/granica-bot/internal/interface/webhook"
	"github.com/KlimZavadski/granica-bot/internal/usecase"
	"github.com/KlimZavadski/granica-bot/pkg/logger"
	"github.com/KlimZavadski/granica-bot/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Granica Bot service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	if err := repository.AutoMigrate(gormDB); err != nil {
		log.Fatal("Failed to migrate schema", "error", err)
	}
	if err := repository.SeedCheckpoints(gormDB); err != nil {
		log.Fatal("Failed to seed checkpoints", "error", err)
	}

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up Redis connection
	redisClient, err := persistence.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}

	// Set up repositories
	carrierRepo := repository.NewGormCarrierRepository(gormDB)
	checkpointRepo := repository.NewGormCheckpointRepository(gormDB)
	journeyRepo := repository.NewGormJourneyRepository(gormDB)
	eventRepo := repository.NewGormJourneyEventRepository(gormDB)
	sessionRepo := repository.NewRedisSessionRepository(redisClient, cfg.SessionTTL)
	updateRepo := repository.NewMongoUpdateRepository(mongoDB)

	// Set up metrics and the conversation engine
	appMetrics := metrics.NewMetrics("granica")
	conversation := usecase.NewConversation(
		carrierRepo,
		checkpointRepo,
		journeyRepo,
		eventRepo,
		sessionRepo,
		appMetrics,
		log,
		cfg.MaxCheckpointGap,
		cfg.DefaultTimezone,
		cfg.StatsLimit,
	)
	dispatcher := usecase.NewUpdateDispatcher(updateRepo, conversation, appMetrics, log)

	// Re-dispatch updates left without an outcome by a previous run
	if recovered, err := dispatcher.RecoverPending(ctx, cfg.RecoveryBatchSize); err != nil {
		log.Error("Failed to recover pending updates", "error", err)
	} else if recovered > 0 {
		log.Info("Recovered pending updates", "count", recovered)
	}

	// Set up HTTP server for the transport webhook and metrics
	mux := http.NewServeMux()
	webhook.NewServer(dispatcher, log).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB and Redis
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Redis disconnect error", "error", err)
	}

	log.Info("Granica Bot service stopped")
}
