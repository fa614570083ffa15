package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"taskapi/internal/adapter/http/handler"
	"taskapi/internal/adapter/http/helper"
	"taskapi/internal/adapter/http/middleware"
	"taskapi/internal/core/telemetry"
	"taskapi/pkg/config"
)

type HandlersConfig struct {
	TaskHandler *handler.TaskHandler
}

func SetupRouter(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *config.Logger, cfg *config.AppConfig) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.LoggingMiddleware(logger))

	if metrics != nil {
		router.Use(middleware.MetricsMiddleware(metrics))
	}

	router.Use(middleware.ErrorBoundary(logger))
	router.Use(middleware.BearerAuth(cfg.AuthToken))

	if cfg.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, logger.Logger.Logger, metrics)
		router.Use(limiter.RateLimitMiddleware())
	}

	router.Use(corsMiddleware())

	setupTaskRoutes(router, handlers.TaskHandler)

	router.NoRoute(func(c *gin.Context) {
		helper.SendMessage(c, http.StatusNotFound, "Not found")
	})

	router.NoMethod(func(c *gin.Context) {
		helper.SendMessage(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return router
}

func setupTaskRoutes(router *gin.Engine, taskHandler *handler.TaskHandler) {
	if taskHandler == nil {
		return
	}

	tasks := router.Group("/tasks")
	{
		tasks.POST("", taskHandler.Create)
		tasks.GET("", taskHandler.List)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
