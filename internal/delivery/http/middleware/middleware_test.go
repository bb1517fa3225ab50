package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/response"
	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/pkg/apperror"
	"github.com/LARRYDMO/Job-portal-website/pkg/auth"
	"github.com/LARRYDMO/Job-portal-website/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-key-that-is-long-enough-0123"

func init() {
	gin.SetMode(gin.TestMode)
}

func nopSecurityLogger() *security.SecurityLogger {
	return security.NewSecurityLogger(zap.NewNop(), "jobportal-api", "test")
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(nopSecurityLogger()))
	r.GET("/app", func(c *gin.Context) { c.Error(apperror.DuplicateApplication()) })
	r.GET("/forbidden", func(c *gin.Context) { c.Error(apperror.Forbidden("Not your job")) })
	r.GET("/boom", func(c *gin.Context) { c.Error(errors.New("pq: connection refused")) })
	r.GET("/ok", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	t.Run("Should render AppError with kind and request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/app", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		body := decodeError(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, apperror.KindDuplicateApplication, body.Kind)
		assert.Equal(t, "req-123", body.RequestID)
		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	})

	t.Run("Should render forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/forbidden", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, apperror.KindForbidden, decodeError(t, w).Kind)
	})

	t.Run("Should hide internal errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, apperror.KindInternal, body.Kind)
		assert.NotContains(t, w.Body.String(), "connection refused")
		assert.NotEmpty(t, body.RequestID)
	})

	t.Run("Should leave successful responses alone", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	})
}

func TestAuthentication(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, "jobportal", time.Hour)
	token, err := tokens.Issue(auth.Subject{ID: "u-1", Name: "Acme", Role: "Employer", Email: "acme@example.com"})
	require.NoError(t, err)

	r := gin.New()
	r.Use(ErrorHandler(nopSecurityLogger()), Authenticate(tokens, "JobPortalAuth"))
	r.GET("/optional", func(c *gin.Context) {
		c.JSON(http.StatusOK, Identity(c))
	})
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetString(string(domain.KeyUserID))})
	})

	t.Run("Should accept bearer token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"u-1"}`, w.Body.String())
	})

	t.Run("Should accept auth cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/optional", nil)
		req.AddCookie(&http.Cookie{Name: "JobPortalAuth", Value: token})
		r.ServeHTTP(w, req)

		var identity domain.Identity
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &identity))
		assert.Equal(t, domain.Identity{ID: "u-1", Name: "Acme", Role: domain.RoleEmployer, Email: "acme@example.com"}, identity)
	})

	t.Run("Should reject missing token on protected route", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperror.KindUnauthorized, decodeError(t, w).Kind)
	})

	t.Run("Should reject forged token", func(t *testing.T) {
		other := auth.NewTokenService("another-secret-key-that-is-long-enough", "jobportal", time.Hour)
		forged, err := other.Issue(auth.Subject{ID: "u-1", Name: "Acme", Role: "Employer"})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, decodeError(t, w).Message, "Invalid")
	})

	t.Run("Should treat invalid token as anonymous on optional route", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/optional", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var identity domain.Identity
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &identity))
		assert.False(t, identity.IsAuthenticated())
	})
}

func TestRateLimitInMemoryFallback(t *testing.T) {
	cfg := AuthRateLimitConfig(2, time.Minute)
	cfg.Logger = nopSecurityLogger()

	r := gin.New()
	r.Use(ErrorHandler(nopSecurityLogger()), RateLimitMiddleware(cfg))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	send := func(ip string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1").Code)

	w := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, apperror.KindRateLimited, decodeError(t, w).Kind)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// other clients keep their own budget
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2").Code)
}

func TestLocalLimiterRefills(t *testing.T) {
	l := newLocalLimiter(2, time.Second)
	now := time.Now()

	ok, _, _ := l.allow("k", now)
	assert.True(t, ok)
	ok, _, _ = l.allow("k", now)
	assert.True(t, ok)
	ok, _, wait := l.allow("k", now)
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	ok, _, _ = l.allow("k", now.Add(600*time.Millisecond))
	assert.True(t, ok)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware(true))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}
