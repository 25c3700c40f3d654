package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"rentvsbuy/config"
	"rentvsbuy/controllers"
	"rentvsbuy/middleware"
	"rentvsbuy/routes"
	"rentvsbuy/services"
	"rentvsbuy/templates"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// GracefulShutdown stops the server on SIGINT/SIGTERM, giving in-flight requests
// up to timeout to finish. The returned channel is closed once the server is down.
func GracefulShutdown(server *http.Server, timeout time.Duration) <-chan struct{} {
	done := make(chan struct{})
	stopper := make(chan os.Signal, 1)
	signal.Notify(stopper, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer close(done)
		<-stopper
		zap.L().Info("Shutting down gracefully...")

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			zap.L().Error("Server shutdown failed", zap.Error(err))
			return
		}
		zap.L().Info("Server exited gracefully")
	}()

	return done
}

func setupLogger(cfg *config.AppConfig) {
	zapConfig := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		log.Printf("Invalid LOG_LEVEL %q, keeping %s", cfg.LogLevel, zapConfig.Level)
	} else {
		zapConfig.Level = level
	}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
}

func setupSentry(cfg *config.AppConfig) {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		EnableTracing:    true,
		Debug:            !cfg.IsProduction(),
		TracesSampleRate: cfg.SentrySampleRate,
	}); err != nil {
		zap.L().Error("Sentry initialization failed: ", zap.Any("error", err.Error()))
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	setupLogger(cfg)
	defer zap.L().Sync()

	setupSentry(cfg)
	defer sentry.Flush(2 * time.Second)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	pages, err := templates.Load()
	if err != nil {
		zap.L().Fatal("Error parsing templates", zap.Error(err))
	}

	projectionService := services.NewProjectionService(cache.New(cfg.CacheTTL, cfg.CacheCleanupInterval))
	projectionController := controllers.NewProjectionController(projectionService, services.ExportService)

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestLogger())
	router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	router.Use(CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst)))
	router.SetHTMLTemplate(pages)

	routes.Routes(router, projectionController)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := GracefulShutdown(server, cfg.ShutdownTimeout)

	zap.L().Info("Server starting", zap.String("address", server.Addr), zap.String("environment", cfg.Environment))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zap.L().Fatal("Error starting server", zap.Error(err))
	}
	<-done
}
