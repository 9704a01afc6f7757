package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshAudit records the outcome of one snapshot refresh cycle so
// operators can see when the timeline last moved and why a refresh failed.
type RefreshAudit struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	Trigger        string    `json:"trigger"` // "startup", "scheduled" or "manual"
	Success        bool      `json:"success"`
	Error          string    `json:"error,omitempty" gorm:"type:text"`
	BlockCount     int       `json:"block_count"`
	DetectionCount int       `json:"detection_count"`
	EventCount     int       `json:"event_count"` // after dedup
	DurationMs     int64     `json:"duration_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r *RefreshAudit) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
