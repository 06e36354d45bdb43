package models

import "time"

// Topic sources. Trending and ai_suggested come from the external trending
// fetch; manual topics are user-entered.
const (
	SourceManual      = "manual"
	SourceTrending    = "trending"
	SourceAiSuggested = "ai_suggested"
)

type Topic struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;not null;size:255" json:"name"`
	Source    string    `gorm:"column:source;not null;size:255" json:"source"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Topic) TableName() string {
	return "topics"
}
