package main

import (
	"context"
	"fmt"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/rs/zerolog"
	"go.uber.org/zap"

	database "taskapi/internal/adapter/database/mongo"
	api "taskapi/internal/adapter/http"
	"taskapi/internal/adapter/telemetry"
	. "taskapi/pkg/config"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config, err := Load()

	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	logger, err := NewLogger(config.ServiceName, config.LokiURL)

	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}

	defer logger.Sync()

	tel, err := telemetry.NewContainer(ctx, telemetry.ConfigFrom(config), logger)

	if err != nil {
		logger.Logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	tel.AppMetrics.StartSystemMetrics(ctx)

	var db *database.DB

	if config.StoreDriver == StoreDriverMongo {
		level, err := zerolog.ParseLevel(config.LogLevel)

		if err != nil {
			level = zerolog.InfoLevel
		}

		db, err = database.NewDB(ctx, config.MongoURI, config.MongoDatabase, level)

		if err != nil {
			logger.Logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
	}

	container, err := api.NewContainer(config, db, tel.AppMetrics, logger)

	if err != nil {
		logger.Logger.Fatal("Failed to build container", zap.Error(err))
	}

	srv := api.NewServer(config, container, tel.AppMetrics, logger)
	serveErr := api.StartServer(srv, config, logger)

	operations := map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			logger.Logger.Info("Shutting down HTTP server")
			return srv.Shutdown(ctx)
		},
		"telemetry": func(ctx context.Context) error {
			return tel.Shutdown(ctx)
		},
	}

	if db != nil {
		operations["mongo"] = func(ctx context.Context) error {
			return db.Close(ctx)
		}
	}

	wait := gfshutdown.GracefulShutdown(ctx, shutdownTimeout, operations)

	select {
	case exitCode := <-wait:
		logger.Logger.Info("Shutdown complete", zap.Int("exit_code", exitCode))
		cancel()
		logger.Sync()
		os.Exit(exitCode)
	case err, ok := <-serveErr:
		if ok && err != nil {
			logger.Logger.Error("HTTP server stopped", zap.Error(err))
			cancel()
			logger.Sync()
			os.Exit(1)
		}

		exitCode := <-wait
		cancel()
		logger.Sync()
		os.Exit(exitCode)
	}
}
