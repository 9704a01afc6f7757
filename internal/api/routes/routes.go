package routes

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/argus-watch/argus/backend/internal/api/handlers"
	"github.com/argus-watch/argus/backend/internal/api/middleware"
	"github.com/argus-watch/argus/backend/internal/config"
	"github.com/argus-watch/argus/backend/internal/logger"
	"github.com/argus-watch/argus/backend/internal/metrics"
	"github.com/argus-watch/argus/backend/internal/models"
	"github.com/argus-watch/argus/backend/internal/services"
	"github.com/argus-watch/argus/backend/internal/shield"
)

// Register wires up API routes, performs automatic migrations and starts
// the background refresh loop. The returned stop function halts the loop.
func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) (func(), error) {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Setting{},
		&models.Notification{},
		&models.NotificationProvider{},
		&models.FilterPreset{},
		&models.RefreshAudit{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	router.GET("/api/v1/health", handlers.HealthHandler)

	// Prometheus metrics on a dedicated registry so tests can register
	// collectors without global-state collisions.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Register(registry)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")

	authService := services.NewAuthService(db, cfg)
	authHandler := handlers.NewAuthHandler(authService)
	authMiddleware := middleware.AuthMiddleware(authService)

	notificationService := services.NewNotificationService(db)
	settingService := services.NewSettingService(db)

	shieldClient := shield.NewClient(cfg.ShieldURL, cfg.ShieldAPIKey)
	detectionLimit := settingService.GetInt(services.SettingDetectionLimit, cfg.DetectionLimit)
	eventService := services.NewEventService(db, shieldClient, notificationService, detectionLimit)
	presetService := services.NewPresetService(db)

	protected := api.Group("/")
	protected.Use(authMiddleware)

	authHandler.RegisterRoutes(api, protected)

	pageSize := settingService.GetInt(services.SettingDefaultPageSize, cfg.DefaultPageSize)
	eventsHandler := handlers.NewEventsHandler(eventService, pageSize)
	eventsHandler.RegisterRoutes(protected)

	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterRoutes(protected)

	presetHandler := handlers.NewPresetHandler(presetService)
	presetHandler.RegisterRoutes(protected)

	settingsHandler := handlers.NewSettingsHandler(settingService)
	settingsHandler.RegisterRoutes(protected)

	stop := startRefreshLoop(eventService, cfg)

	return stop, nil
}

// startRefreshLoop schedules periodic snapshot refreshes. An invalid cron
// spec falls back to a plain ticker so the dashboard never goes stale.
// The returned function stops the scheduler and cancels any refresh in
// flight.
func startRefreshLoop(eventService *services.EventService, cfg config.Config) func() {
	loopCtx, cancel := context.WithCancel(context.Background())

	refresh := func(trigger string) {
		ctx, done := context.WithTimeout(loopCtx, 30*time.Second)
		defer done()
		if err := eventService.Refresh(ctx, trigger); err != nil {
			logger.Log().WithError(err).Warn("Scheduled refresh failed")
		}
	}

	// Initial snapshot so the first page load isn't empty.
	go refresh("startup")

	c := cron.New()
	if _, err := c.AddFunc(cfg.RefreshSpec, func() { refresh("scheduled") }); err != nil {
		logger.Log().WithError(err).WithField("spec", cfg.RefreshSpec).
			Warn("Invalid refresh spec, using fallback interval")
		go func() {
			ticker := time.NewTicker(config.RefreshFallbackInterval)
			defer ticker.Stop()
			for {
				select {
				case <-loopCtx.Done():
					return
				case <-ticker.C:
					refresh("scheduled")
				}
			}
		}()
		return cancel
	}
	c.Start()

	return func() {
		cancel()
		c.Stop()
	}
}
