package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	adminapp "github.com/storefront/backend/internal/application/admin"
	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	customerapp "github.com/storefront/backend/internal/application/customer"
	identityapp "github.com/storefront/backend/internal/application/identity"
	orderapp "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/storefront/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Storefront API
//	@version		1.0
//	@description	Online storefront backend: catalog, cart, checkout, orders and store administration.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Identity provider session token. Format: "Bearer {token}"

const version = "1.0.0"

func main() {
	// A missing .env is fine outside local development
	_ = godotenv.Load()

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
	defer func() { _ = log.Sync() }()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracer, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
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
	log.Info("Database connected")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
			Enabled:    true,
			LogFullSQL: cfg.Telemetry.DBLogFullSQL,
			DBName:     cfg.Database.DBName,
		}, log); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	var (
		stores    cache.Stores
		blacklist auth.TokenBlacklist
	)
	if redisClient != nil {
		stores = cache.NewStores(cfg, redisClient, log)
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	} else {
		stores = cache.NewStores(cfg, nil, log)
		blacklist = auth.NewInMemoryTokenBlacklist()
	}
	go stores.Run(ctx, cache.DefaultSweepInterval, log)

	var images adminapp.ImageStorage = storage.DisabledImageStorage{}
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ImageStorage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize image storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare image bucket", zap.Error(err))
		}
		images = s3Storage
	}

	// Domain events
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(event.NewLogHandler(log))
	var publisher *event.AMQPPublisher
	if cfg.Broker.Enabled {
		publisher, err = event.NewAMQPPublisher(cfg.Broker, log)
		if err != nil {
			log.Fatal("Failed to connect to message broker", zap.Error(err))
		}
		bus.Subscribe(publisher, trade.EventTypeOrderPlaced)
	}
	if err := bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	commentRepo := persistence.NewGormCommentRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	// Services
	identityService := identityapp.NewIdentityService(userRepo, log)
	identityService.SetEventPublisher(bus)
	productService := catalogapp.NewProductService(productRepo)
	commentService := catalogapp.NewCommentService(commentRepo, productRepo)
	cartService := cartapp.NewCartService(stores.Carts, productRepo)
	addressService := customerapp.NewAddressService(addressRepo)
	checkoutService := checkoutapp.NewCheckoutService(
		stores.Carts, stores.Sessions, addressRepo, uow,
		checkoutapp.NewSimulatedAuthorizer(cfg.Checkout.PaymentDelay),
		log,
	)
	checkoutService.SetEventPublisher(bus)
	orderService := orderapp.NewOrderService(orderRepo, addressRepo, log)
	orderService.SetEventPublisher(bus)
	adminProductService := adminapp.NewProductService(productRepo, images, log)
	adminProductService.SetEventPublisher(bus)
	dashboardService := adminapp.NewDashboardService(productRepo, orderRepo)

	// HTTP engine
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	serviceName := cfg.Telemetry.ServiceName
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(serviceName, tracer.IsEnabled()))
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		go limiter.Run(ctx)
		engine.Use(middleware.RateLimit(limiter))
	}
	engine.Use(middleware.SpanEnricher())

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		log.Info("Swagger UI enabled", zap.String("path", "/swagger/index.html"))
	}

	authenticate := middleware.Authenticate(middleware.AuthConfig{
		Verifier:  auth.NewTokenVerifier(cfg.JWT),
		Blacklist: blacklist,
		Resolver:  identityService,
		Logger:    log,
	})

	router.RegisterStorefront(engine, router.Handlers{
		Health:   handler.NewHealthHandler(db, version),
		Catalog:  handler.NewCatalogHandler(productService, commentService),
		Identity: handler.NewIdentityHandler(blacklist, log),
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Order:    handler.NewOrderHandler(orderService),
		Address:  handler.NewAddressHandler(addressService),
		Admin:    handler.NewAdminHandler(adminProductService, dashboardService, orderService),
	}, authenticate)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error("Error closing message broker connection", zap.Error(err))
		}
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer", zap.Error(err))
	}

	log.Info("Server exited")
}
