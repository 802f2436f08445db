package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	eventapp "github.com/fintrack/ledger/internal/application/event"
	ledgerapp "github.com/fintrack/ledger/internal/application/ledger"
	sharingapp "github.com/fintrack/ledger/internal/application/sharing"
	transactionapp "github.com/fintrack/ledger/internal/application/transaction"
	"github.com/fintrack/ledger/internal/domain/ledger"
	"github.com/fintrack/ledger/internal/domain/sharing"
	"github.com/fintrack/ledger/internal/domain/transaction"
	"github.com/fintrack/ledger/internal/infrastructure/auth"
	"github.com/fintrack/ledger/internal/infrastructure/cache"
	"github.com/fintrack/ledger/internal/infrastructure/config"
	"github.com/fintrack/ledger/internal/infrastructure/event"
	"github.com/fintrack/ledger/internal/infrastructure/logger"
	"github.com/fintrack/ledger/internal/infrastructure/persistence"
	"github.com/fintrack/ledger/internal/interfaces/http/handler"
	"github.com/fintrack/ledger/internal/interfaces/http/middleware"
	"github.com/fintrack/ledger/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ledger service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// run owns every component lifecycle, so returning (instead of exiting)
	// lets the deferred shutdowns fire in reverse start order.
	if err := run(cfg, log); err != nil {
		log.Fatal("Service terminated", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

func run(cfg *config.Config, log *zap.Logger) error {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.Open(&cfg.Database, gormLog)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	shareRepo := persistence.NewGormShareRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Domain events are appended to the outbox in the same transaction as
	// the aggregate write, then relayed to the bus by the processor.
	eventSerializer := event.NewEventSerializer()
	event.RegisterAllEvents(eventSerializer)

	topics := event.NewTopicResolver(map[string]string{
		ledger.AggregateTypeLedger:       cfg.Event.LedgerTopic,
		sharing.AggregateTypeLedgerShare: cfg.Event.LedgerShareTopic,
	}, cfg.Event.LedgerTopic)

	outboxPublisher := event.NewOutboxPublisher(eventSerializer, topics)
	ledgerRepo.SetOutboxEventSaver(outboxPublisher)
	shareRepo.SetOutboxEventSaver(outboxPublisher)

	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		return fmt.Errorf("start event bus: %w", err)
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	if cfg.Event.ProcessorEnabled {
		processorConfig := event.DefaultOutboxProcessorConfig()
		processorConfig.BatchSize = cfg.Event.BatchSize
		processorConfig.PollInterval = cfg.Event.PollInterval
		processorConfig.CleanupEnabled = cfg.Event.CleanupEnabled
		processorConfig.CleanupRetention = cfg.Event.CleanupRetention

		outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, processorConfig, log)
		if err := outboxProcessor.Start(context.Background()); err != nil {
			return fmt.Errorf("start outbox processor: %w", err)
		}
		defer func() {
			if err := outboxProcessor.Stop(context.Background()); err != nil {
				log.Error("Error stopping outbox processor", zap.Error(err))
			}
		}()
	}

	syncService, err := newSyncService(cfg, transactionRepo, log)
	if err != nil {
		return err
	}
	stopConsumer, err := startTransactionConsumer(cfg, syncService, log)
	if err != nil {
		return err
	}
	defer stopConsumer()

	jwtService := auth.NewJWTService(cfg.JWT)
	handlers := router.Handlers{
		Ledger:   handler.NewLedgerHandler(ledgerapp.NewLedgerService(ledgerRepo, shareRepo, transactionRepo, log)),
		Category: handler.NewCategoryHandler(ledgerapp.NewCategoryService(categoryRepo, ledgerRepo, shareRepo, log)),
		Share:    handler.NewShareHandler(sharingapp.NewShareService(shareRepo, ledgerRepo, userRepo, log)),
		Outbox:   handler.NewOutboxHandler(eventapp.NewOutboxService(outboxRepo, log)),
		System: handler.NewSystemHandler(map[string]handler.ReadinessCheck{
			"database": func(ctx context.Context) error { return db.Ping() },
		}),
	}

	engine := newEngine(cfg, log)
	authMiddleware := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Logger:     log,
	})
	router.Setup(engine, handlers, authMiddleware)

	return serve(cfg, engine, log)
}

// newSyncService wires the remote transaction consumer's application service,
// with Redis-backed dedup when idempotency is enabled.
func newSyncService(cfg *config.Config, repo transaction.TransactionRepository, log *zap.Logger) (*transactionapp.SyncService, error) {
	syncService := transactionapp.NewSyncService(repo, log)
	if !cfg.Event.IdempotencyEnabled {
		return syncService, nil
	}

	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	)
	dedupStore, err := storeFactory.CreateStore()
	if err != nil {
		return nil, fmt.Errorf("create idempotency store: %w", err)
	}
	return syncService.WithDedup(dedupStore, cfg.Event.IdempotencyTTL), nil
}

// startTransactionConsumer subscribes to the remote transaction stream. An
// unreachable Redis only disables the consumer, the HTTP API stays up.
func startTransactionConsumer(cfg *config.Config, syncService *transactionapp.SyncService, log *zap.Logger) (stop func(), err error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	pingErr := redisClient.Ping(pingCtx).Err()
	cancelPing()
	if pingErr != nil {
		log.Warn("Redis unavailable, transaction event consumer disabled", zap.Error(pingErr))
		return func() { _ = redisClient.Close() }, nil
	}

	consumerConfig := event.DefaultRedisStreamConsumerConfig(cfg.Event.TransactionTopic, cfg.App.Name)
	consumer := event.NewRedisStreamConsumer(redisClient, syncService, consumerConfig, log)
	if err := consumer.Start(context.Background()); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("start transaction event consumer: %w", err)
	}

	return func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := consumer.Stop(stopCtx); err != nil {
			log.Error("Error stopping transaction event consumer", zap.Error(err))
		}
		_ = redisClient.Close()
	}, nil
}

// newEngine assembles the gin middleware chain shared by every route.
func newEngine(cfg *config.Config, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	engine.Use(middleware.HTTPMetrics())

	return engine
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests for up to 30 seconds.
func serve(cfg *config.Config, engine *gin.Engine, log *zap.Logger) error {
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
	}
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
