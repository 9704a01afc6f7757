package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/argus-watch/argus/backend/internal/events"
	"github.com/argus-watch/argus/backend/internal/models"
)

var (
	ErrPresetNotFound  = errors.New("filter preset not found")
	ErrPresetNameTaken = errors.New("filter preset name already in use")
)

// PresetService persists named timeline filters. Criteria are stored as
// the serialized events.Criteria value so the engine stays stateless.
type PresetService struct {
	db *gorm.DB
}

func NewPresetService(db *gorm.DB) *PresetService {
	return &PresetService{db: db}
}

// decodeCriteria validates the stored/submitted criteria JSON.
func decodeCriteria(raw string) (events.Criteria, error) {
	var c events.Criteria
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return events.Criteria{}, fmt.Errorf("parse criteria: %w", err)
	}
	if err := c.Validate(); err != nil {
		return events.Criteria{}, fmt.Errorf("invalid criteria: %w", err)
	}
	return c, nil
}

func (s *PresetService) Create(preset *models.FilterPreset) error {
	if strings.TrimSpace(preset.Name) == "" {
		return errors.New("preset name required")
	}
	if _, err := decodeCriteria(preset.Criteria); err != nil {
		return err
	}

	var existing models.FilterPreset
	if err := s.db.Where("name = ?", preset.Name).First(&existing).Error; err == nil {
		return ErrPresetNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.db.Create(preset).Error
}

func (s *PresetService) Update(preset *models.FilterPreset) error {
	if _, err := decodeCriteria(preset.Criteria); err != nil {
		return err
	}
	var existing models.FilterPreset
	if err := s.db.Where("id = ?", preset.ID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPresetNotFound
		}
		return err
	}
	existing.Name = preset.Name
	existing.Criteria = preset.Criteria
	return s.db.Save(&existing).Error
}

func (s *PresetService) List() ([]models.FilterPreset, error) {
	var presets []models.FilterPreset
	if err := s.db.Order("name asc").Find(&presets).Error; err != nil {
		return nil, err
	}
	return presets, nil
}

// Get loads a preset and its decoded criteria.
func (s *PresetService) Get(id string) (*models.FilterPreset, events.Criteria, error) {
	var preset models.FilterPreset
	if err := s.db.Where("id = ?", id).First(&preset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, events.Criteria{}, ErrPresetNotFound
		}
		return nil, events.Criteria{}, err
	}
	criteria, err := decodeCriteria(preset.Criteria)
	if err != nil {
		// Stored presets predate validation; treat as unfiltered rather
		// than making the preset unloadable.
		return &preset, events.Criteria{}, nil
	}
	return &preset, criteria, nil
}

func (s *PresetService) Delete(id string) error {
	return s.db.Delete(&models.FilterPreset{}, "id = ?", id).Error
}
