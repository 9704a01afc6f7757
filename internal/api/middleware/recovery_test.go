package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argus-watch/argus/backend/internal/logger"
)

func panicRequest(t *testing.T, verbose bool, mutate func(*http.Request)) (string, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	buf := &bytes.Buffer{}
	logger.Init(verbose, buf)

	router := gin.New()
	router.Use(RequestID())
	router.Use(Recovery(verbose))
	router.GET("/boom", func(c *gin.Context) {
		panic("snapshot corrupted")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	if mutate != nil {
		mutate(req)
	}
	router.ServeHTTP(w, req)
	return buf.String(), w
}

func TestRecovery_VerboseIncludesStackAndRequestID(t *testing.T) {
	out, w := panicRequest(t, true, nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.Contains(t, out, "panic recovered: snapshot corrupted")
	assert.Contains(t, out, "goroutine")
	assert.Contains(t, out, "request_id")
}

func TestRecovery_BriefWithoutVerbose(t *testing.T) {
	out, w := panicRequest(t, false, nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, out, "panic recovered: snapshot corrupted")
	assert.NotContains(t, out, "goroutine")
}

func TestRecovery_RedactsSensitiveHeaders(t *testing.T) {
	out, w := panicRequest(t, true, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer secret-token")
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, out, "secret-token")
	assert.Contains(t, out, "<redacted>")
}
