package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/outpost-tools/rostering-service/internal/adapters"
	"github.com/outpost-tools/rostering-service/internal/config"
	"github.com/outpost-tools/rostering-service/internal/database"
	"github.com/outpost-tools/rostering-service/internal/handlers"
	customMiddleware "github.com/outpost-tools/rostering-service/internal/middleware"
	"github.com/outpost-tools/rostering-service/internal/rules"
	"github.com/outpost-tools/rostering-service/internal/service"
	"github.com/outpost-tools/rostering-service/internal/storage"
	"github.com/outpost-tools/rostering-service/pkg/jwt"
	"github.com/outpost-tools/rostering-service/pkg/logger"
	"github.com/outpost-tools/rostering-service/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set service start time for metrics
	startTime := time.Now()
	go func() {
		for {
			metrics.ServiceUptime.Set(time.Since(startTime).Seconds())
			time.Sleep(cfg.Metrics.UpdateInterval)
		}
	}()

	// Set service info
	metrics.ServiceInfo.WithLabelValues("1.0.0", time.Now().Format(time.RFC3339)).Set(1)

	// Initialize database
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis
	redis, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redis.Close()

	// Initialize JWT validator
	jwtValidator := jwt.NewValidator(cfg.Auth.PublicKeyURL, redis, cfg.Auth.CacheTTL)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.JWTValidatorClient)
	defer cancel()

	if err := jwtValidator.Initialize(ctx); err != nil {
		logger.Fatal("Failed to initialize JWT validator", zap.Error(err))
	}

	// Refresh JWT public key periodically
	go func() {
		ticker := time.NewTicker(cfg.Auth.RefreshInterval)
		defer ticker.Stop()

		for range ticker.C {
			ctx := context.Background()
			if err := jwtValidator.RefreshPublicKey(ctx); err != nil {
				logger.Error("Failed to refresh JWT public key", zap.Error(err))
			}
		}
	}()

	// Load and compile the combination ruleset
	ruleset, err := rules.Load(cfg.Ruleset.Path)
	if err != nil {
		logger.Fatal("Failed to load ruleset",
			zap.String("path", cfg.Ruleset.Path),
			zap.Error(err),
		)
	}
	metrics.RulesCompiled.Set(float64(len(ruleset.Rules)))
	logger.Info("Compiled combination ruleset",
		zap.String("path", cfg.Ruleset.Path),
		zap.Int("rules", len(ruleset.Rules)),
	)

	// Initialize repository dependencies
	dbAdapter := adapters.NewDatabaseAdapter(db)
	cacheAdapter := adapters.NewCacheAdapter(redis)
	metricsAdapter := adapters.NewMetricsAdapter()

	repositoryDeps := &storage.RepositoryDependencies{
		DB:               dbAdapter,
		Cache:            cacheAdapter,
		MetricsCollector: metricsAdapter,
	}

	// Initialize repository
	repository := storage.NewRepository(repositoryDeps)

	// Initialize plan service
	planService := service.NewPlanService(
		repository.Operator,
		cacheAdapter,
		ruleset,
		cfg.Plans.CacheTTL,
		logger.Get(),
	)

	// Initialize handlers
	handlerDeps := &handlers.HandlerDependencies{
		PlanService: planService,
		DB:          db,
		Redis:       redis,
		Logger:      logger.Get(),
	}
	allHandlers := handlers.NewHandlers(handlerDeps)

	// Setup public router
	publicRouter := chi.NewRouter()

	// Public router middleware
	publicRouter.Use(middleware.RequestID)
	publicRouter.Use(middleware.RealIP)
	publicRouter.Use(customMiddleware.Recovery())
	publicRouter.Use(customMiddleware.Logging())
	publicRouter.Use(customMiddleware.Metrics())
	publicRouter.Use(middleware.Timeout(cfg.Timeouts.HTTPMiddleware))

	// CORS for public endpoints
	publicRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Setup internal router
	internalRouter := chi.NewRouter()

	// Internal router middleware
	internalRouter.Use(middleware.RequestID)
	internalRouter.Use(middleware.RealIP)
	internalRouter.Use(customMiddleware.Recovery())
	internalRouter.Use(customMiddleware.Logging())
	internalRouter.Use(customMiddleware.Metrics())
	internalRouter.Use(middleware.Timeout(cfg.Timeouts.HTTPMiddleware))

	// Internal endpoints - health, metrics
	internalRouter.Get("/health", allHandlers.Health.Health)
	internalRouter.Get("/ready", allHandlers.Health.Ready)
	internalRouter.Handle("/metrics", promhttp.Handler())

	// Public API routes
	publicRouter.Route("/rostering", func(r chi.Router) {
		// All public endpoints require JWT authentication
		r.Use(customMiddleware.Auth(jwtValidator))

		r.Post("/plans", allHandlers.Plan.GeneratePlan)
		r.Get("/operators", allHandlers.Plan.GetOperators)
		r.Get("/rules", allHandlers.Plan.GetRules)
	})

	// Create public HTTP server
	publicServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      publicRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Create internal HTTP server
	internalServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.InternalPort),
		Handler:      internalRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start public server in a goroutine
	go func() {
		logger.Info("Starting Rostering Service public server",
			zap.String("host", cfg.Server.Host),
			zap.String("port", cfg.Server.Port),
		)

		if err := publicServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start public server", zap.Error(err))
		}
	}()

	// Start internal server in a goroutine
	go func() {
		logger.Info("Starting Rostering Service internal server",
			zap.String("host", cfg.Server.Host),
			zap.String("port", cfg.Server.InternalPort),
		)

		if err := internalServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start internal server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel = context.WithTimeout(context.Background(), cfg.Timeouts.GracefulShutdown)
	defer cancel()

	// Shutdown both servers
	shutdownErr := make(chan error, 2)

	go func() {
		if err := publicServer.Shutdown(ctx); err != nil {
			shutdownErr <- fmt.Errorf("public server shutdown error: %w", err)
		} else {
			shutdownErr <- nil
		}
	}()

	go func() {
		if err := internalServer.Shutdown(ctx); err != nil {
			shutdownErr <- fmt.Errorf("internal server shutdown error: %w", err)
		} else {
			shutdownErr <- nil
		}
	}()

	// Wait for both servers to shut down
	for i := 0; i < 2; i++ {
		if err := <-shutdownErr; err != nil {
			logger.Error("Server forced to shutdown", zap.Error(err))
		}
	}

	logger.Info("Servers exited")
}
