package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/llm-dissector/internal/cache"
	"github.com/SAP-F-2025/llm-dissector/internal/config"
	"github.com/SAP-F-2025/llm-dissector/internal/handlers"
	"github.com/SAP-F-2025/llm-dissector/internal/llm"
	"github.com/SAP-F-2025/llm-dissector/internal/randx"
	"github.com/SAP-F-2025/llm-dissector/internal/repositories"
	"github.com/SAP-F-2025/llm-dissector/internal/services"
	"github.com/SAP-F-2025/llm-dissector/internal/utils"
	"github.com/SAP-F-2025/llm-dissector/internal/validator"
	"github.com/SAP-F-2025/llm-dissector/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewDefaultLogger().LogError(err, "Failed to load configuration")
		os.Exit(1)
	}

	logger := utils.NewLoggerForEnvironment(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.LogError(err, "Failed to initialise session store", "store", cfg.SessionStore)
		os.Exit(1)
	}
	defer closeStore()

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.LogError(err, "Failed to create event publisher")
		os.Exit(1)
	}
	defer publisher.Close()

	openai := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.LLMTimeout,
	}, logger)
	gateway := llm.NewGateway(openai, llm.GatewayConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.LLMTimeout,
	}, logger)
	if !gateway.Configured() {
		logger.Warn("OPENAI_API_KEY is not set; stages 2-6 will report a configuration error")
	}

	rnd := randx.Default()
	serviceLogger := services.NewServiceLogger(slogger, services.LogConfig{
		Service:   "llm-dissector",
		Component: "session",
	})

	catalogService := services.NewCatalogService()
	sessionService := services.NewSessionService(
		repositories.NewSessionRepository(store, cfg.SessionTTL),
		catalogService,
		services.NewController(gateway, rnd),
		publisher,
		validator.New(),
		rnd,
		serviceLogger,
	)
	serviceManager := services.NewServiceManager(
		sessionService,
		catalogService,
		services.NewExportService(cfg.AdminToken != "", logger),
	)

	go pruneGuards(ctx, sessionService, guardPruneInterval, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(logger), utils.ContextLogger(logger))

	handlers.NewHandlerManager(serviceManager, handlers.RouterConfig{
		AdminToken:  cfg.AdminToken,
		CORSOrigins: cfg.CORSOrigins,
	}, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"session_store", cfg.SessionStore,
			"model", cfg.OpenAIModel,
			"events_enabled", cfg.Events.Enabled)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError(err, "Server error")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	// Allow an in-flight generation call to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.LLMTimeout+5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.LogError(err, "Graceful shutdown failed")
	}
}

const guardPruneInterval = 5 * time.Minute

// pruneGuards drops session locks left behind by sessions that expired in
// the store.
func pruneGuards(ctx context.Context, sessions services.SessionService, interval time.Duration, logger utils.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.PruneGuards(ctx); n > 0 {
				logger.Debug("Pruned session guards", "count", n)
			}
		}
	}
}

func newSessionStore(ctx context.Context, cfg *config.Config, logger utils.Logger) (cache.CacheService, func(), error) {
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		client, err := pkg.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using redis session store")
		return cache.NewRedisCache(client, logger), func() { client.Close() }, nil
	default:
		if cfg.SessionStore != config.SessionStoreMemory {
			logger.Warn("Unknown session store, falling back to memory", "store", cfg.SessionStore)
		}
		store := cache.NewMemoryCache()
		return store, func() { store.Close() }, nil
	}
}
