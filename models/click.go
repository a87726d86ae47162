package models

import (
	"time"
)

type Click struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	LinkID    uint      `json:"link_id" gorm:"index;not null"`
	ClickedAt time.Time `json:"clicked_at"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	IsValid   bool      `json:"is_valid"`
}
