package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newBodyLimitRouter(maxBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(BodyLimit(maxBytes))
	router.POST("/transactions", func(c *gin.Context) {
		buf := make([]byte, 4096)
		if _, err := c.Request.Body.Read(buf); err != nil && !errors.Is(err, io.EOF) {
			c.String(http.StatusBadRequest, "truncated")
			return
		}
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestBodyLimit(t *testing.T) {
	t.Run("accepts a payload under the limit", func(t *testing.T) {
		router := newBodyLimitRouter(1024)

		req := httptest.NewRequest("POST", "/transactions", strings.NewReader(`{"amount":"12.50"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("refuses a declared Content-Length over the limit", func(t *testing.T) {
		router := newBodyLimitRouter(64)

		req := httptest.NewRequest("POST", "/transactions", strings.NewReader(strings.Repeat("x", 200)))
		req.ContentLength = 200
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "PAYLOAD_TOO_LARGE")
	})

	t.Run("caps chunked uploads without a Content-Length", func(t *testing.T) {
		router := newBodyLimitRouter(64)

		req := httptest.NewRequest("POST", "/transactions", strings.NewReader(strings.Repeat("x", 200)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bodyless requests pass", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(BodyLimit(16))
		router.GET("/ledgers", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		req := httptest.NewRequest("GET", "/ledgers", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
