package models

import (
	"strings"
	"time"
)

// Post statuses. Pending and ready posts carry no schedule information;
// posted and failed are terminal.
const (
	StatusPending   = "pending"
	StatusReady     = "ready"
	StatusScheduled = "scheduled"
	StatusPosted    = "posted"
	StatusFailed    = "failed"
)

type Post struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Platform     string     `gorm:"column:platform;not null;size:255" json:"platform"`
	Content      string     `gorm:"column:content;type:text" json:"content"`
	ImageUrl     string     `gorm:"column:image_url;size:1024" json:"image_url"`
	ScheduledFor *time.Time `gorm:"column:scheduled_for" json:"scheduled_for"`
	Status       string     `gorm:"column:status;not null;size:255" json:"status"`
	ExternalId   string     `gorm:"column:external_id;size:255" json:"external_id"`
	Logs         string     `gorm:"column:logs;type:text" json:"-"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoCreateTime;autoUpdateTime" json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

// Terminal reports whether the post can no longer transition.
func (p *Post) Terminal() bool {
	return p.Status == StatusPosted || p.Status == StatusFailed
}

// ValidContent checks the local validation rule for advancing a draft to
// ready: non-empty text within the platform's character limit.
func ValidContent(platform, content string) bool {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return false
	}
	return len([]rune(content)) <= CharLimit(platform)
}
