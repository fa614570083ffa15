package http

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"taskapi/internal/adapter/http/routes"
	"taskapi/internal/core/telemetry"
	"taskapi/pkg/config"
)

// NewServer builds the API server around the container's handlers.
func NewServer(cfg *config.AppConfig, container *Container, metrics *telemetry.AppMetrics, logger *config.Logger) *http.Server {
	router := routes.SetupRouter(routes.HandlersConfig{
		TaskHandler: container.TaskHandler,
	}, metrics, logger, cfg)

	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
}

// StartServer serves in the background. A listen failure is sent on the
// returned channel.
func StartServer(srv *http.Server, cfg *config.AppConfig, logger *config.Logger) <-chan error {
	errc := make(chan error, 1)

	logger.Logger.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("store_driver", cfg.StoreDriver),
		zap.String("update_mode", cfg.UpdateMode),
		zap.Bool("rate_limit_enabled", cfg.RateLimitEnabled),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Error("Server failed to start", zap.Error(err))
			errc <- err
		}
		close(errc)
	}()

	return errc
}
