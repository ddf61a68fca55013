package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and attaches the caller to both the
// gin context and the request context. No usecase runs for a rejected token.
func AuthMiddleware(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Authorization header with Bearer token required")
			c.Abort()
			return
		}

		caller, err := authUC.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			code, message := http.StatusUnauthorized, "Invalid or expired token"
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				code, message = appErr.Code, appErr.Message
			}
			response.Error(c, code, message)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyCaller), caller)
		c.Request = c.Request.WithContext(domain.ContextWithCaller(c.Request.Context(), caller))
		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role is not listed.
// It must run after AuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "User not authenticated")
			c.Abort()
			return
		}
		for _, r := range roles {
			if caller.Role == r {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "Access denied")
		c.Abort()
	}
}

// CallerFrom returns the caller attached by AuthMiddleware.
func CallerFrom(c *gin.Context) (*domain.Caller, bool) {
	return domain.CallerFromContext(c.Request.Context())
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
