package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/fee_management_app/internal/core/ports"
	"github.com/SscSPs/fee_management_app/internal/core/services"
	"github.com/SscSPs/fee_management_app/internal/handlers"
	"github.com/SscSPs/fee_management_app/internal/middleware"
	"github.com/SscSPs/fee_management_app/internal/platform/config"
	"github.com/SscSPs/fee_management_app/internal/platform/events"
	"github.com/SscSPs/fee_management_app/internal/platform/scheduler"
	"github.com/SscSPs/fee_management_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/fee_management_app/internal/utils"
	"github.com/SscSPs/fee_management_app/pkg/database"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

// @title Fee Management Backend API
// @version 1.0
// @description 1Link bill inquiry/payment and back-office challan management.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// `fee_backend hash-password <password>` prints a value for ADMIN_PASSWORD_HASH.
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := utils.HashPassword(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return err
	}

	var publisher ports.EventPublisher = events.NoopPublisher{Logger: logger}
	if cfg.AMQPURL != "" {
		p, err := events.NewPublisher(cfg.AMQPURL, logger)
		if err != nil {
			// Billing works without the broker; events are best effort.
			logger.Warn("RabbitMQ unavailable, billing events disabled", slog.String("error", err.Error()))
		} else {
			defer p.Close()
			publisher = p
			logger.Info("Publishing billing events", slog.String("exchange", events.Exchange))
		}
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	svcs := services.NewServiceContainer(cfg, repos, publisher)

	jobs := scheduler.NewScheduler(cfg.ChallanGenerationSchedule, svcs.Challan, logger)
	if err := jobs.Start(); err != nil {
		return fmt.Errorf("invalid CHALLAN_GENERATION_SCHEDULE %q: %w", cfg.ChallanGenerationSchedule, err)
	}
	defer func() {
		<-jobs.Stop().Done()
	}()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}
	handlers.RegisterRoutes(r, cfg, svcs)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
