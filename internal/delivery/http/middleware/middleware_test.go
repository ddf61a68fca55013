package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuth struct {
	callers map[string]*domain.Caller
	calls   int
}

func (s *stubAuth) Register(context.Context, domain.RegisterRequest) (*domain.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuth) Login(context.Context, domain.LoginRequest) (*domain.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (*domain.Caller, error) {
	s.calls++
	if c, ok := s.callers[token]; ok {
		return c, nil
	}
	return nil, apperror.Unauthorized("Invalid or expired token")
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (rl *RateLimiter) localCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.local)
}

func TestAuthMiddleware(t *testing.T) {
	auth := &stubAuth{callers: map[string]*domain.Caller{
		"good":  {ID: "u1", Username: "ada", Role: domain.RoleRecruiter},
		"admin": {ID: "a1", Username: "root", Role: domain.RoleAdmin},
	}}

	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	protected := r.Group("", AuthMiddleware(auth))
	protected.GET("/me", func(c *gin.Context) {
		caller, ok := domain.CallerFromContext(c.Request.Context())
		require.True(t, ok)
		response.Success(c, http.StatusOK, "", caller)
	})
	protected.GET("/admin", RequireRole(domain.RoleAdmin), func(c *gin.Context) {
		response.Success(c, http.StatusOK, "", nil)
	})

	cases := []struct {
		name   string
		path   string
		header string
		code   int
	}{
		{"missing header", "/me", "", http.StatusUnauthorized},
		{"wrong scheme", "/me", "Basic good", http.StatusUnauthorized},
		{"empty token", "/me", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "/me", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "/me", "Bearer good", http.StatusOK},
		{"lowercase scheme", "/me", "bearer good", http.StatusOK},
		{"role guard rejects recruiter", "/admin", "Bearer good", http.StatusForbidden},
		{"role guard admits admin", "/admin", "Bearer admin", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.code, w.Code)
			body := decode(t, w)
			assert.Equal(t, tc.code == http.StatusOK, body.Success)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/conflict", func(c *gin.Context) { _ = c.Error(apperror.Conflict("taken")) })
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(assert.AnError) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "taken", decode(t, w).Message)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.False(t, body.Success)
	assert.NotContains(t, body.Message, assert.AnError.Error())
}

func TestTimeoutRendersEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(), Timeout(5*time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
		_ = c.Error(apperror.Internal(c.Request.Context().Err()))
	})
	r.GET("/fast", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		response.Success(c, http.StatusOK, "", nil)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	body := decode(t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "Request timed out", body.Message)
	assert.False(t, body.Timestamp.IsZero())
	assert.NotEmpty(t, body.RequestID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fast", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("RequestID")) })

	const id = "0b6a1c53-4f0e-4c55-9d3e-6f2b1a8e7c10"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String())
	assert.Equal(t, id, w.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Body.String())
	assert.Len(t, w.Body.String(), 36)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware(true))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}

type rateRecorder struct {
	limited []string
}

func (r *rateRecorder) RecordRequest(string, string, int, time.Duration) {}
func (r *rateRecorder) RecordRateLimited(scope string) { r.limited = append(r.limited, scope) }
func (r *rateRecorder) RecordApplicationSubmitted() {}
func (r *rateRecorder) RecordStatusChange(string) {}

func TestRateLimiterInMemory(t *testing.T) {
	rec := &rateRecorder{}
	rl := NewRateLimiter(AuthRateLimitConfig(3, time.Minute), nil, rec)
	defer rl.Stop()

	r := gin.New()
	r.Use(rl.Middleware())
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	}
	w := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, []string{"auth"}, rec.limited)

	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code, "limits are per client")
	assert.Equal(t, 2, rl.localCount())

	rl.cleanup(time.Now().Add(3 * time.Minute))
	assert.Equal(t, 0, rl.localCount())
}
