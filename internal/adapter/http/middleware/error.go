package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskapi/internal/adapter/http/helper"
	"taskapi/pkg/config"
	"taskapi/pkg/tracing"
)

type StatusCoder interface {
	StatusCode() int
}

// ErrorBoundary turns the last error a handler attached with c.Error into a
// {"message": ...} response. The status comes from the error when it carries
// one, otherwise 500.
func ErrorBoundary(logger *config.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		logger.Error(c.Request.Context(), err.Error(),
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("trace_id", tracing.GetTraceID(c.Request.Context())),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)

		if c.Writer.Written() {
			return
		}

		helper.SendMessage(c, StatusFor(err), err.Error())
	}
}

// Recovery answers panics with the same shape as ErrorBoundary.
func Recovery(logger *config.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		err := fmt.Errorf("%v", recovered)

		logger.Error(c.Request.Context(), err.Error(),
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("trace_id", tracing.GetTraceID(c.Request.Context())),
			zap.Bool("panic", true),
		)

		helper.AbortWithMessage(c, http.StatusInternalServerError, err.Error())
	})
}

func StatusFor(err error) int {
	var coder StatusCoder

	if errors.As(err, &coder) {
		if status := coder.StatusCode(); status >= 400 && status < 600 {
			return status
		}
	}

	return http.StatusInternalServerError
}
