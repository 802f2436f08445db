package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newCORSRouter(cfg CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/ledgers", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestCORSWithConfig(t *testing.T) {
	appOrigin := "https://app.fintrack.example"

	t.Run("grants a whitelisted origin", func(t *testing.T) {
		router := newCORSRouter(CORSConfig{
			AllowOrigins:     []string{appOrigin},
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		})

		req := httptest.NewRequest("GET", "/ledgers", nil)
		req.Header.Set("Origin", appOrigin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, appOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("unknown origin gets no grant but the request is served", func(t *testing.T) {
		router := newCORSRouter(CORSConfig{AllowOrigins: []string{appOrigin}})

		req := httptest.NewRequest("GET", "/ledgers", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("empty whitelist never grants", func(t *testing.T) {
		router := newCORSRouter(CORSConfig{})

		req := httptest.NewRequest("GET", "/ledgers", nil)
		req.Header.Set("Origin", appOrigin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard grants any origin without credentials", func(t *testing.T) {
		router := newCORSRouter(CORSConfig{
			AllowOrigins:     []string{"*"},
			AllowCredentials: true,
		})

		req := httptest.NewRequest("GET", "/ledgers", nil)
		req.Header.Set("Origin", "https://anywhere.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight is answered with 204 and the grant", func(t *testing.T) {
		router := newCORSRouter(CORSConfig{
			AllowOrigins: []string{appOrigin},
			AllowMethods: []string{"GET", "POST", "DELETE"},
			MaxAge:       12 * time.Hour,
		})

		req := httptest.NewRequest("OPTIONS", "/ledgers", nil)
		req.Header.Set("Origin", appOrigin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, appOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("preflight from an unknown origin still gets 204, without a grant", func(t *testing.T) {
		router := newCORSRouter(CORSConfig{AllowOrigins: []string{appOrigin}})

		req := httptest.NewRequest("OPTIONS", "/ledgers", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() *gin.Engine {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/ledgers", func(c *gin.Context) {
			c.String(http.StatusOK, c.GetString("request_id"))
		})
		return router
	}

	t.Run("generates an ID when the caller sends none", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ledgers", nil)
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		id := w.Header().Get("X-Request-ID")
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, w.Body.String(), "context and header must carry the same ID")
	})

	t.Run("propagates a caller-supplied ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ledgers", nil)
		req.Header.Set("X-Request-ID", "upstream-trace-42")
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, "upstream-trace-42", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "upstream-trace-42", w.Body.String())
	})
}

func TestSecure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(mw gin.HandlerFunc) *httptest.ResponseRecorder {
		router := gin.New()
		router.Use(mw)
		router.GET("/ledgers", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		req := httptest.NewRequest("GET", "/ledgers", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("defaults set the baseline headers without HSTS", func(t *testing.T) {
		w := serve(Secure())

		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
		assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
		assert.NotEmpty(t, w.Header().Get("Permissions-Policy"))
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("HSTS header reflects the configured flags", func(t *testing.T) {
		cfg := DefaultSecurityConfig()
		cfg.HSTSEnabled = true
		cfg.HSTSPreload = true
		w := serve(SecureWithConfig(cfg))

		hsts := w.Header().Get("Strict-Transport-Security")
		assert.Contains(t, hsts, "max-age=31536000")
		assert.Contains(t, hsts, "includeSubDomains")
		assert.Contains(t, hsts, "preload")
	})

	t.Run("CSP can be switched off", func(t *testing.T) {
		cfg := DefaultSecurityConfig()
		cfg.CSPEnabled = false
		w := serve(SecureWithConfig(cfg))

		assert.Empty(t, w.Header().Get("Content-Security-Policy"))
	})
}
