package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/argus-watch/argus/backend/internal/services"
)

type SettingsHandler struct {
	service *services.SettingService
}

func NewSettingsHandler(service *services.SettingService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.service.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

type settingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

func (h *SettingsHandler) Set(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Set(req.Key, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save setting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.List)
	rg.PUT("/settings", h.Set)
}
