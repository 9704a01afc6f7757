package main

import (
	"fmt"
	"log"
	"os"

	"github.com/argus-watch/argus/backend/internal/config"
	"github.com/argus-watch/argus/backend/internal/database"
	"github.com/argus-watch/argus/backend/internal/models"
	"github.com/argus-watch/argus/backend/internal/services"
)

// Seeds a fresh database with an admin account and sensible defaults so a
// new install is usable without manual SQL.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := database.Connect(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Setting{},
		&models.Notification{},
		&models.NotificationProvider{},
		&models.FilterPreset{},
		&models.RefreshAudit{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	fmt.Println("✓ Database migrated successfully")

	email := envOr("ARGUS_ADMIN_EMAIL", "admin@example.com")
	password := envOr("ARGUS_ADMIN_PASSWORD", "changeme123")

	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count == 0 {
		authService := services.NewAuthService(db, cfg)
		user, err := authService.Register(email, password, "Administrator")
		if err != nil {
			log.Fatal("Failed to seed admin user:", err)
		}
		user.Role = "admin"
		if err := db.Save(user).Error; err != nil {
			log.Fatal("Failed to promote admin user:", err)
		}
		fmt.Printf("✓ Admin user created: %s\n", email)
	} else {
		fmt.Printf("✓ Admin user already exists: %s\n", email)
	}

	settingService := services.NewSettingService(db)
	defaults := map[string]string{
		services.SettingDefaultPageSize: "15",
		services.SettingDetectionLimit:  "200",
		services.SettingDashboardTitle:  "Argus Security Dashboard",
	}
	for key, value := range defaults {
		if settingService.Get(key, "") == "" {
			if err := settingService.Set(key, value); err != nil {
				log.Fatal("Failed to seed setting:", err)
			}
		}
	}
	fmt.Println("✓ Default settings seeded")

	presetService := services.NewPresetService(db)
	presets := []models.FilterPreset{
		{Name: "Critical only", Criteria: `{"risk_level":"critical"}`},
		{Name: "Active blocks", Criteria: `{"status":"active"}`},
		{Name: "Token replay", Criteria: `{"detection_type":"token_replay"}`},
	}
	for _, preset := range presets {
		p := preset
		if err := presetService.Create(&p); err != nil && err != services.ErrPresetNameTaken {
			log.Fatal("Failed to seed preset:", err)
		}
	}
	fmt.Println("✓ Starter filter presets seeded")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
