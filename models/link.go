package models

import (
	"time"
)

type Link struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OriginalURL string    `json:"original_url" gorm:"uniqueIndex;not null"`
	ShortCode   string    `json:"short_code" gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time `json:"created_at"`
	Clicks      []Click   `json:"clicks,omitempty" gorm:"foreignKey:LinkID"`
}
