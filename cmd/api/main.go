package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/call-assistant/pkg/validator"

	"github.com/johnquangdev/call-assistant/internal/adapter/handler"
	"github.com/johnquangdev/call-assistant/internal/adapter/repository"
	"github.com/johnquangdev/call-assistant/internal/infrastructure/cache"
	httpmw "github.com/johnquangdev/call-assistant/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/call-assistant/internal/usecase/call"
	"github.com/johnquangdev/call-assistant/internal/usecase/summary"
	pkgai "github.com/johnquangdev/call-assistant/pkg/ai"
	"github.com/johnquangdev/call-assistant/pkg/config"
	"github.com/johnquangdev/call-assistant/pkg/speech"
)

// @title           CashNDrive Call Assistant API
// @version         1.0
// @description     Voice call assistant backend: call sessions, language-model replies, summaries and speech conversion.
// @BasePath        /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Background workers stop with this context
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Client address used by the rate limiter; forwarding headers only count behind trusted proxies
	e.IPExtractor = httpmw.ClientIPExtractor(cfg.Server.TrustedProxies)

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Rate limit store: Redis when configured, process memory otherwise
	var windowStore cache.WindowStore
	if cfg.RateLimit.RedisAddr != "" {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(ctx, cfg.RateLimit)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		windowStore = cache.NewRedisWindowStore(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	} else {
		windowStore = cache.NewMemoryWindowStore(ctx, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing session store...")
	sessionRepo := repository.NewMemorySessionRepository(logger)
	sessionRepo.StartJanitor(ctx, cfg.Session.SweepInterval, cfg.Session.Retention, cfg.Session.IdleTimeout)

	// Initialize language model and speech providers
	log.Println("🤖 Initializing AI components...")
	llm := pkgai.New(cfg, logger)
	if !cfg.LLMConfigured() {
		log.Println("⚠️  Language model not configured, replies use the demo responder")
	}
	speechService := speech.NewService(cfg, logger)
	if speechService.Mocked() {
		log.Println("⚠️  Speech running in MOCK mode")
	}

	systemPrompt, err := cfg.SystemPrompt()
	if err != nil {
		log.Fatalf("Failed to load system prompt: %v", err)
	}

	// Initialize use cases
	log.Println("📞 Initializing call service...")
	summaryService := summary.NewService(llm, logger)
	callService := call.NewService(sessionRepo, llm, summaryService, call.Options{
		Greeting:     cfg.Assistant.Greeting,
		SystemPrompt: systemPrompt,
	}, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	rateLimit := httpmw.RateLimit(windowStore, logger, handler.Responder(logger))
	router := handler.NewRouter(
		cfg,
		handler.NewCallHandler(callService, logger),
		handler.NewSpeechHandler(speechService, logger),
		rateLimit,
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
