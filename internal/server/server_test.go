package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/argus-watch/argus/backend/internal/config"
)

func newTestServer(t *testing.T) *Server {
	gin.SetMode(gin.TestMode)

	// Stub Shield so the startup refresh succeeds against empty data.
	shield := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(shield.Close)

	frontendDir := t.TempDir()
	err := os.WriteFile(filepath.Join(frontendDir, "index.html"), []byte("<html></html>"), 0644)
	require.NoError(t, err)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := config.Config{
		Environment:     "test",
		HTTPPort:        "0",
		FrontendDir:     frontendDir,
		JWTSecret:       "test-secret",
		ShieldURL:       shield.URL,
		RefreshSpec:     "@every 1h",
		DetectionLimit:  200,
		DefaultPageSize: 15,
	}

	srv, err := New(db, cfg)
	require.NoError(t, err)
	t.Cleanup(srv.Stop)
	return srv
}

func TestServer_StopIsIdempotent(t *testing.T) {
	srv := newTestServer(t)
	srv.Stop()
	srv.Stop()
}

func TestServer_HealthAndFrontend(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/health", nil)
	srv.Engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// SPA fallback serves index.html for unknown non-API paths.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/dashboard", nil)
	srv.Engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<html></html>")

	// Unknown API paths stay JSON 404s.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/v1/nope", nil)
	srv.Engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_ProtectedRoutesRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/security/events", nil)
	srv.Engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServer_MetricsExposed(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	srv.Engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
