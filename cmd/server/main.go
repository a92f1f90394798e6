package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	eventapp "github.com/storefront/backend/internal/application/event"
	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/application/notification"
	partnerapp "github.com/storefront/backend/internal/application/partner"
	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/messaging"
	"github.com/storefront/backend/internal/infrastructure/migration"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"github.com/storefront/backend/migrations"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Storefront API
//	@version		1.0
//	@description	Multi-tenant storefront: sellers manage a catalog, shoppers order by phone number.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to set up request validation", zap.Error(err))
	}

	if missing := cfg.MissingSettings(); len(missing) > 0 {
		log.Warn("Mandatory settings missing, serving setup-required responses only",
			zap.Strings("missing", missing))
		engine := newEngine(cfg, log)
		engine.Use(middleware.SetupRequired(missing, "/health"))
		engine.GET("/health", handler.NewSystemHandler(nil, missing, version).Health)
		serve(cfg, engine, log)
		return
	}

	ctx := context.Background()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		_ = tracerProvider.Shutdown(context.Background())
	}()
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		_ = meterProvider.Shutdown(context.Background())
	}()
	metrics, err := telemetry.NewStorefrontMetrics(meterProvider.Meter("storefront"))
	if err != nil {
		log.Fatal("Failed to create storefront metrics", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	defer func() {
		_ = loggerProvider.Shutdown(context.Background())
	}()
	logLevel, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		logLevel = zapcore.InfoLevel
	}
	log = loggerProvider.Bridge(log, logLevel)

	profiler, err := telemetry.NewProfiler(cfg.Telemetry.Profiling, cfg.Telemetry.ServiceName, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		_ = profiler.Stop()
	}()
	if profiler.IsEnabled() && cfg.Telemetry.Profiling.SpanProfiles {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	if cfg.Database.AutoMigrate {
		if err := applyMigrations(cfg, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}
	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry, log); err != nil {
		log.Fatal("Failed to enable database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Ephemeral stores: Redis when configured, memory otherwise
	var (
		cartRepo    trade.CartRepository
		idempotency shared.IdempotencyStore
		blacklist   auth.TokenBlacklist
	)
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		cartRepo = cache.NewRedisCartRepository(redisClient, cfg.Storefront.CartTTL)
		idempotency = cache.NewRedisIdempotencyStore(redisClient)
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		cartRepo = cache.NewInMemoryCartRepository(cfg.Storefront.CartTTL)
		idempotency = cache.NewInMemoryIdempotencyStore()
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis not configured, carts and revoked tokens are kept in memory")
	}

	// Image storage
	var imageStorage catalogapp.ImageStorage = storage.UnconfiguredStorage{}
	if cfg.Storage.Enabled() {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Warn("Object storage bucket check failed", zap.Error(err))
		}
		imageStorage = s3Storage
	} else {
		log.Warn("Object storage not configured, image uploads are disabled")
	}

	gateway, err := messaging.NewGatewayClient(cfg.Messaging)
	if err != nil {
		log.Fatal("Failed to initialize messaging gateway client", zap.Error(err))
	}

	// Repositories
	sellerRepo := persistence.NewGormSellerRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Order events are written to the outbox in the order transaction
	eventSerializer := event.NewEventSerializer()
	event.RegisterAllEvents(eventSerializer)
	outboxPublisher := event.NewOutboxPublisher(eventSerializer, cfg.Event.MaxRetries)
	txScope := persistence.NewGormTransactionScope(db.DB, outboxPublisher)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	sellerService := identityapp.NewSellerService(sellerRepo, txScope, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, imageStorage, log)
	imageService := catalogapp.NewImageService(imageStorage, log)
	clientService := partnerapp.NewClientService(clientRepo, sellerRepo, log)
	orderService := tradeapp.NewOrderService(txScope, orderRepo, log)
	orderService.SetMetrics(metrics)
	orderService.SetLocation(cfg.Storefront.Location())
	cartService := tradeapp.NewCartService(cartRepo, productRepo, orderService, log)
	relayService := notification.NewRelayService(sellerRepo, gateway, log)
	outboxService := eventapp.NewOutboxService(outboxRepo, log)

	// Event bus and notifications
	eventBus := event.NewInMemoryEventBus(log)
	notificationHandler := notification.NewOrderNotificationHandler(
		relayService,
		sellerRepo,
		notification.NewTexts(cfg.Storefront.NotificationLanguage, cfg.Storefront.PublicBaseURL),
		idempotency,
		log,
	)
	notificationHandler.SetMetrics(metrics)
	eventBus.Subscribe(notificationHandler)
	log.Info("Event handlers registered",
		zap.Strings("order_notification_events", notificationHandler.EventTypes()))

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	if cfg.Event.ProcessorEnabled {
		processorConfig := event.OutboxProcessorConfig{
			BatchSize:        cfg.Event.BatchSize,
			PollInterval:     cfg.Event.PollInterval,
			CleanupEnabled:   cfg.Event.CleanupEnabled,
			CleanupRetention: cfg.Event.CleanupRetention,
		}
		outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, processorConfig, log)
		if err := outboxProcessor.Start(ctx); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
		defer func() {
			if err := outboxProcessor.Stop(context.Background()); err != nil {
				log.Error("Error stopping outbox processor", zap.Error(err))
			}
		}()
		log.Info("Outbox processor started",
			zap.Int("batch_size", cfg.Event.BatchSize),
			zap.Duration("poll_interval", cfg.Event.PollInterval),
		)
	} else {
		log.Warn("Outbox processor disabled, order notifications stay queued")
	}

	systemHandler := handler.NewSystemHandler(db, nil, version)

	engine := newEngine(cfg, log)
	engine.Use(middleware.HTTPMetrics(metrics))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, tracerProvider.IsEnabled()))
	engine.Use(middleware.ProfilingLabels(profiler.IsEnabled()))
	engine.GET("/health", systemHandler.Health)

	var loginRateLimit gin.HandlerFunc
	if cfg.HTTP.RateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Stop()
		loginRateLimit = middleware.AuthRateLimit(authLimiter)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.StorefrontRoutes(router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Seller:   handler.NewSellerHandler(sellerService),
		Category: handler.NewCategoryHandler(categoryService),
		Product:  handler.NewProductHandler(productService),
		Upload:   handler.NewUploadHandler(imageService),
		Client:   handler.NewClientHandler(clientService),
		Order:    handler.NewOrderHandler(orderService),
		Cart:     handler.NewCartHandler(cartService),
		Relay:    handler.NewRelayHandler(relayService),
		Outbox:   handler.NewOutboxHandler(outboxService),
		System:   systemHandler,
	}, router.Guards{
		Authenticate: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			Validator: authService,
			Logger:    log,
		}),
		LoginRateLimit: loginRateLimit,
	})...)
	r.Setup()

	serve(cfg, engine, log)
}

// newEngine builds the gin engine with the middleware every mode shares:
// request id, recovery, access log, security headers, CORS, body and rate limits
func newEngine(cfg *config.Config, log *zap.Logger) *gin.Engine {
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

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimitWithUploads(cfg.HTTP.MaxBodySize, cfg.HTTP.MaxUploadSize, "/api/v1/admin/uploads/"))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	return engine
}

// applyMigrations brings the schema up to date on its own connection,
// since closing the migrator also closes the pool it was given
func applyMigrations(cfg *config.Config, log *zap.Logger) error {
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	m, err := migration.New(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains it
func serve(cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}
