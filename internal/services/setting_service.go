package services

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/argus-watch/argus/backend/internal/models"
)

// Well-known setting keys.
const (
	SettingDefaultPageSize = "default_page_size"
	SettingDetectionLimit  = "detection_limit"
	SettingDashboardTitle  = "dashboard_title"
)

type SettingService struct {
	db *gorm.DB
}

func NewSettingService(db *gorm.DB) *SettingService {
	return &SettingService{db: db}
}

func (s *SettingService) List() ([]models.Setting, error) {
	var settings []models.Setting
	if err := s.db.Order("key asc").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// Get returns the stored value for key, or fallback when unset.
func (s *SettingService) Get(key, fallback string) string {
	var setting models.Setting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return fallback
	}
	return setting.Value
}

// GetInt returns the stored value parsed as an int, or fallback when unset
// or unparsable.
func (s *SettingService) GetInt(key string, fallback int) int {
	raw := s.Get(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// Set upserts a single setting.
func (s *SettingService) Set(key, value string) error {
	var setting models.Setting
	err := s.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&models.Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	setting.Value = value
	return s.db.Save(&setting).Error
}
