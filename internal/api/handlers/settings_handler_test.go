package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/argus-watch/argus/backend/internal/api/handlers"
	"github.com/argus-watch/argus/backend/internal/models"
	"github.com/argus-watch/argus/backend/internal/services"
)

func newSettingsRouter(t *testing.T) (*gin.Engine, *services.SettingService) {
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))

	service := services.NewSettingService(db)
	handler := handlers.NewSettingsHandler(service)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/"))
	return router, service
}

func TestSettingsHandler_SetAndList(t *testing.T) {
	router, service := newSettingsRouter(t)

	w := postJSON(router, "PUT", "/settings", `{"key":"default_page_size","value":"25"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 25, service.GetInt(services.SettingDefaultPageSize, 15))

	// Upsert overwrites.
	w = postJSON(router, "PUT", "/settings", `{"key":"default_page_size","value":"50"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/settings", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var settings []models.Setting
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	require.Len(t, settings, 1)
	assert.Equal(t, "50", settings[0].Value)
}

func TestSettingsHandler_SetRequiresKey(t *testing.T) {
	router, _ := newSettingsRouter(t)

	w := postJSON(router, "PUT", "/settings", `{"value":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
