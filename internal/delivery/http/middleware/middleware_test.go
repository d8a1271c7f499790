package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"simhire-backend/internal/delivery/http/middleware"
	"simhire-backend/internal/delivery/http/response"
	"simhire-backend/internal/domain"
	"simhire-backend/internal/repository/cache"
	"simhire-backend/pkg/apperror"
	"simhire-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var res response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { response.Success(c, http.StatusOK, "ok", nil) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get("X-Request-ID")
	assert.Len(t, id, 36)
	assert.Equal(t, id, decode(t, w).RequestID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get("X-Request-ID"))
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/validation", func(c *gin.Context) {
		c.Error(apperror.Validation([]string{"Judul Lowongan: Minimal 3 karakter"}))
	})
	r.GET("/internal", func(c *gin.Context) {
		c.Error(apperror.Internal(errors.New("pq: connection reset")))
	})
	r.GET("/plain", func(c *gin.Context) {
		c.Error(errors.New("boom"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/validation", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	res := decode(t, w)
	assert.False(t, res.Success)
	assert.Equal(t, "Validation failed", res.Message)
	assert.Equal(t, []string{"Judul Lowongan: Minimal 3 karakter"}, res.Errors)

	for _, path := range []string{"/internal", "/plain"} {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "pq:")
		assert.NotContains(t, w.Body.String(), "boom")
	}
}

func TestAuthMiddleware(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	denylist := cache.NewTokenDenylist(nil)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(issuer, denylist))
	r.GET("/me", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "ok", gin.H{
			"id":   c.GetString(string(domain.KeyUserID)),
			"role": c.GetString(string(domain.KeyUserRole)),
		})
	})

	call := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("").Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("Bearer nope").Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, _, err := issuer.Issue("user-1", "budi@example.com", domain.RoleCompany)
		require.NoError(t, err)

		w := call("Bearer " + token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"user-1"`)
		assert.Contains(t, w.Body.String(), `"role":"company"`)
	})

	t.Run("revoked token", func(t *testing.T) {
		token, exp, err := issuer.Issue("user-2", "sari@example.com", domain.RoleCandidate)
		require.NoError(t, err)
		claims, err := issuer.Parse(token)
		require.NoError(t, err)
		require.NoError(t, denylist.Revoke(context.Background(), claims.ID, exp))

		assert.Equal(t, http.StatusUnauthorized, call("Bearer "+token).Code)
	})
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(string(domain.KeyUserRole), c.GetHeader("X-Role"))
	})
	r.GET("/company", middleware.RequireRole(domain.RoleCompany), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/company", nil)
	req.Header.Set("X-Role", domain.RoleCandidate)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req.Header.Set("X-Role", domain.RoleCompany)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimitInMemory(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Limit:   2,
		Window:  time.Minute,
		Scope:   "test",
		KeyFunc: func(c *gin.Context) string { return c.GetHeader("X-Client") },
	}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(client string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Client", client)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, hit("a").Code)
	w := hit("a")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = hit("a")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, hit("b").Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORSMiddleware("https://simhire.id"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://simhire.id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://simhire.id", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
