package models

import "time"

type MenuItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255); not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       int64   `gorm:"not null" json:"price"`
	ImageUrl    *string `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// DailyMenu memetakan menu item ke tanggal penyajian tertentu.
type DailyMenu struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MenuItemID uint      `gorm:"not null;index" json:"menu_item_id"`
	MenuItem   MenuItem  `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"menu_item"`
	MenuDate   string    `gorm:"type:varchar(10);not null;index" json:"menu_date"` // YYYY-MM-DD
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
