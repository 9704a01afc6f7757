package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FilterPreset is a saved timeline filter. Criteria holds the serialized
// events.Criteria JSON so presets survive restarts and can be shared
// between operators; the engine itself stays stateless.
type FilterPreset struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name" gorm:"uniqueIndex"`
	Criteria  string    `json:"criteria" gorm:"type:text"`
	CreatedBy uint      `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *FilterPreset) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
