package middleware

import (
	"context"
	"errors"
	"net/http"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Log.Warn("request timed out",
				zap.String("request_id", c.GetString("RequestID")),
				zap.String("path", c.Request.URL.Path),
			)
			response.Error(c, http.StatusServiceUnavailable, "Request timed out")
			return
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logInternal(c, appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		// Never expose internal error details to clients.
		logInternal(c, err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}
}

func logInternal(c *gin.Context, err error) {
	logger.Log.Error("internal server error",
		zap.Error(err),
		zap.String("request_id", c.GetString("RequestID")),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
}
