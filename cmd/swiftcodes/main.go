package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	handler "github.com/zdziszkee/swift-registry/internal/api/handlers"
	"github.com/zdziszkee/swift-registry/internal/api/router"
	config "github.com/zdziszkee/swift-registry/internal/configurations"
	"github.com/zdziszkee/swift-registry/internal/database"
	"github.com/zdziszkee/swift-registry/internal/logging"
	"github.com/zdziszkee/swift-registry/internal/metrics"
	"github.com/zdziszkee/swift-registry/internal/readers/files"
	repository "github.com/zdziszkee/swift-registry/internal/repositories"
	service "github.com/zdziszkee/swift-registry/internal/services"
)

// loadSwiftCodesFromFile reads the data file and runs it through batch ingestion
func loadSwiftCodesFromFile(ctx context.Context, filePath string, svc service.SwiftService, logger *zap.Logger) error {
	startTime := time.Now()

	records, err := files.Read(filePath)
	if err != nil {
		return err
	}

	summary, err := svc.IngestBatch(ctx, records)
	logger.Info("data file loaded",
		zap.String("file", filePath),
		zap.Int("records", len(records)),
		zap.Int("added", summary.Added),
		zap.Int("skipped", summary.Skipped),
		zap.Int("store_errors", summary.StoreErrors),
		zap.Duration("took", time.Since(startTime)),
	)
	return err
}

func run() error {
	configPath := pflag.StringP("config", "c", "", "Path to configuration file")
	loadFile := pflag.StringP("load", "l", "", "Path to a .xlsx or .csv SWIFT codes file to load at startup")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if *loadFile != "" {
		cfg.Data.SwiftCodesFile = *loadFile
		cfg.Data.AutoLoad = true
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	m := metrics.New()
	repo := repository.NewSQLSwiftRepository(db)
	swiftService := service.NewSwiftService(repo, logger, m)

	if cfg.Data.AutoLoad {
		logger.Info("loading SWIFT codes", zap.String("file", cfg.Data.SwiftCodesFile))

		loadCtx, cancel := ctx, context.CancelFunc(func() {})
		if cfg.Data.LoadTimeout > 0 {
			loadCtx, cancel = context.WithTimeout(ctx, cfg.Data.LoadTimeout)
		}
		err := loadSwiftCodesFromFile(loadCtx, cfg.Data.SwiftCodesFile, swiftService, logger)
		cancel()
		if err != nil {
			logger.Warn("failed to load SWIFT codes", zap.Error(err))
		}
	}

	h := handler.NewSwiftHandler(swiftService, logger, handler.Options{
		DataFile:     cfg.Data.SwiftCodesFile,
		LoadTimeout:  cfg.Data.LoadTimeout,
		DefaultLimit: cfg.Pagination.DefaultLimit,
		MaxLimit:     cfg.Pagination.MaxLimit,
	})

	app := router.SetupRoutes(h, router.Config{
		AppName:      cfg.AppName,
		Logger:       logger,
		Metrics:      m,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("address", cfg.Server.Address))
		serverErr <- app.Listen(cfg.Server.Address)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exiting")
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
