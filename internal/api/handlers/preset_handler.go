package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/argus-watch/argus/backend/internal/models"
	"github.com/argus-watch/argus/backend/internal/services"
)

type PresetHandler struct {
	service *services.PresetService
}

func NewPresetHandler(service *services.PresetService) *PresetHandler {
	return &PresetHandler{service: service}
}

type presetRequest struct {
	Name     string `json:"name" binding:"required"`
	Criteria string `json:"criteria" binding:"required"`
}

func (h *PresetHandler) List(c *gin.Context) {
	presets, err := h.service.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list presets"})
		return
	}
	c.JSON(http.StatusOK, presets)
}

func (h *PresetHandler) Get(c *gin.Context) {
	preset, criteria, err := h.service.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrPresetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "preset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load preset"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preset": preset, "criteria": criteria})
}

func (h *PresetHandler) Create(c *gin.Context) {
	var req presetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	preset := &models.FilterPreset{
		Name:     req.Name,
		Criteria: req.Criteria,
	}
	if err := h.service.Create(preset); err != nil {
		if errors.Is(err, services.ErrPresetNameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, preset)
}

func (h *PresetHandler) Update(c *gin.Context) {
	var req presetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	preset := &models.FilterPreset{
		ID:       c.Param("id"),
		Name:     req.Name,
		Criteria: req.Criteria,
	}
	if err := h.service.Update(preset); err != nil {
		if errors.Is(err, services.ErrPresetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "preset not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, preset)
}

func (h *PresetHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete preset"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *PresetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/presets", h.List)
	rg.GET("/presets/:id", h.Get)
	rg.POST("/presets", h.Create)
	rg.PUT("/presets/:id", h.Update)
	rg.DELETE("/presets/:id", h.Delete)
}
