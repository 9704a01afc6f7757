package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationProvider is an external push target (Discord, Slack, Gotify,
// Telegram, ...) addressed by a shoutrrr URL.
type NotificationProvider struct {
	ID      string `gorm:"primaryKey" json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"` // discord, slack, gotify, telegram, generic
	URL     string `json:"url"`  // shoutrrr URL
	Enabled bool   `json:"enabled"`

	// Per-event-class preferences.
	NotifyCritical bool `json:"notify_critical" gorm:"default:true"`
	NotifyBlocks   bool `json:"notify_blocks" gorm:"default:true"`
	NotifyRefresh  bool `json:"notify_refresh" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *NotificationProvider) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
