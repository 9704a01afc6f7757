package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWithHeaders(cfg SecurityHeadersConfig) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SecurityHeaders(cfg))
	router.GET("/events", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestSecurityHeaders_Production(t *testing.T) {
	resp := serveWithHeaders(SecurityHeadersConfig{})
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Equal(t, "max-age=31536000; includeSubDomains", resp.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "DENY", resp.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-referrer", resp.Header().Get("Referrer-Policy"))
	assert.Equal(t, "same-origin", resp.Header().Get("Cross-Origin-Opener-Policy"))
	assert.Equal(t, "same-origin", resp.Header().Get("Cross-Origin-Resource-Policy"))

	csp := resp.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "default-src 'self'")
	assert.Contains(t, csp, "connect-src 'self'")
	assert.Contains(t, csp, "frame-ancestors 'none'")
	assert.NotContains(t, csp, "unsafe-eval")

	pp := resp.Header().Get("Permissions-Policy")
	for _, feature := range []string{"camera", "microphone", "geolocation", "payment"} {
		assert.Contains(t, pp, feature+"=()")
	}
}

func TestSecurityHeaders_DevelopmentRelaxations(t *testing.T) {
	resp := serveWithHeaders(SecurityHeadersConfig{IsDevelopment: true})
	require.Equal(t, http.StatusOK, resp.Code)

	// No HSTS on plain-HTTP dev servers.
	assert.Empty(t, resp.Header().Get("Strict-Transport-Security"))

	// Vite needs eval and the HMR websocket.
	csp := resp.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "'unsafe-eval'")
	assert.Contains(t, csp, "ws:")
}

func TestBuildCSP_DeterministicOrder(t *testing.T) {
	first := buildCSP(SecurityHeadersConfig{})
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, buildCSP(SecurityHeadersConfig{}))
	}
	assert.True(t, strings.HasPrefix(first, "default-src 'self'"))
}

func TestBuildCSP_ExtraDirectives(t *testing.T) {
	csp := buildCSP(SecurityHeadersConfig{ExtraCSP: map[string]string{
		"img-src":    "'self' data: https://tiles.example.com",
		"worker-src": "'self'",
	}})

	// Overrides replace the default; unknown directives are appended.
	assert.Contains(t, csp, "img-src 'self' data: https://tiles.example.com")
	assert.Contains(t, csp, "worker-src 'self'")
}
