package models

import "time"

type OrderLineItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order Order `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	// Snapshot data anak saat order dibuat; perubahan data anak di
	// kemudian hari tidak mengubah riwayat order.
	ChildID      *uint    `gorm:"index" json:"child_id"`
	ChildName    string   `gorm:"type:varchar(255);not null" json:"child_name"`
	ChildClass   string   `gorm:"type:varchar(50)" json:"child_class"`
	MenuItemID   uint     `gorm:"not null" json:"menu_item_id"`
	MenuItem     MenuItem `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu_item"`
	Quantity     int      `gorm:"not null" json:"quantity"`
	UnitPrice    int64    `gorm:"not null" json:"unit_price"`
	TotalPrice   int64    `gorm:"not null" json:"total_price"`
	DeliveryDate string   `gorm:"type:varchar(10);not null" json:"delivery_date"` // YYYY-MM-DD
	OrderDate    string   `gorm:"type:varchar(10);not null" json:"order_date"`
	Notes        *string  `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
