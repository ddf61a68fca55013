package v1

import (
	"net/http"
	"time"

	"go-jobportal-backend/internal/delivery/http/middleware"
	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/internal/usecase"
	"go-jobportal-backend/pkg/metrics"
	"go-jobportal-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	UserUC        domain.UserUsecase
	HealthUC      usecase.HealthUsecase

	// Optional. Nil limiters disable rate limiting.
	GlobalLimiter *middleware.RateLimiter
	AuthLimiter   *middleware.RateLimiter

	Metrics  metrics.Recorder
	Gatherer prometheus.Gatherer

	CORSAllowedOrigins []string
	HSTS               bool

	// Zero disables the per-request deadline.
	RequestTimeout time.Duration
}

func NewRouter(deps RouterDeps) *gin.Engine {
	validation.RegisterWithGin()
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.CORSAllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.SecurityHeadersMiddleware(deps.HSTS))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Timeout(deps.RequestTimeout))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Resource not found")
	})

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(deps.Gatherer)))
	}

	v1 := r.Group("/api/v1")
	if deps.GlobalLimiter != nil {
		v1.Use(deps.GlobalLimiter.Middleware())
	}

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.Success(c, http.StatusOK, "System operational", map[string]string{"status": "ok"})
			return
		}
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			c.JSON(http.StatusServiceUnavailable, response.Response{
				Success:   false,
				Message:   "Dependency unavailable",
				Data:      status,
				Timestamp: response.Now().UTC(),
				RequestID: c.GetString(string(domain.KeyRequestID)),
			})
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	var authLimit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.AuthLimiter != nil {
		authLimit = deps.AuthLimiter.Middleware()
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC))
	{
		NewAuthHandler(v1, deps.AuthUC, authLimit)
		NewJobHandler(v1, protected, deps.JobUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewAdminHandler(protected, deps.UserUC)
	}

	return r
}
