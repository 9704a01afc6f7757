package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argus-watch/argus/backend/internal/logger"
)

func TestRequestID_GeneratesIDAndLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.Init(true, &bytes.Buffer{})

	router := gin.New()
	router.Use(RequestID())
	router.GET("/events", func(c *gin.Context) {
		assert.NotNil(t, GetRequestLogger(c))
		assert.NotEmpty(t, c.GetString(RequestIDKey))
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRequestID_HonoursValidInboundID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.Init(true, &bytes.Buffer{})

	router := gin.New()
	router.Use(RequestID())
	router.GET("/events", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	inbound := uuid.New().String()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set(RequestIDHeader, inbound)
	router.ServeHTTP(w, req)

	assert.Equal(t, inbound, w.Header().Get(RequestIDHeader))
}

func TestRequestID_ReplacesGarbageInboundID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.Init(true, &bytes.Buffer{})

	router := gin.New()
	router.Use(RequestID())
	router.GET("/events", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid\r\ninjected: header")
	router.ServeHTTP(w, req)

	got := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(got)
	assert.NoError(t, err)
}

func TestGetRequestLogger_FallsBackOutsideRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, GetRequestLogger(c))
}
