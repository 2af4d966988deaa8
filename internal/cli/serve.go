package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/insightloop/insightloop/internal/adapter/handler"
	"github.com/insightloop/insightloop/internal/adapter/repository"
	"github.com/insightloop/insightloop/internal/domain/repositories"
	"github.com/insightloop/insightloop/internal/infrastructure/cache"
	"github.com/insightloop/insightloop/internal/infrastructure/database"
	pkgvalidator "github.com/insightloop/insightloop/pkg/validator"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the report HTTP API",
	Long: `Serve exposes the pipeline over HTTP: POST /v1/reports analyzes a
server-local audio file, GET /v1/reports/:id and GET /v1/reports read
generated reports. Database and Redis are optional; without them the
server runs generation only.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	service, err := buildPipeline()
	if err != nil {
		return err
	}

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())

	// Optional persistence
	var repo repositories.ReportRepository
	if cfg.Database.Enabled {
		logger.Info("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.CloseDB(db)
		repo = repository.NewReportRepository(db)
	}

	// Optional report cache
	var reportCache handler.ReportCache
	if cfg.Redis.Enabled {
		logger.Info("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisStore.Close()
		reportCache = redisStore
	}

	reportHandler := handler.NewReportHandler(service, repo, reportCache, logger)
	router := handler.NewRouter(cfg, reportHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server", zap.String("addr", addr), zap.String("environment", cfg.Server.Environment))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")
	timeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	logger.Info("👋 Server stopped")
	return nil
}
