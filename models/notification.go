package models

import (
	"time"
)

// Notification adalah catatan event pembayaran untuk admin.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(100)" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Type      string    `gorm:"type:varchar(20);not null;default:'payment'" json:"type"`
	Status    string    `gorm:"type:varchar(20);not null;default:'unread'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
