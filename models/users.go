package models

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FullName  string `gorm:"type:varchar(255); not null" json:"full_name"`
	Email     string `gorm:"type:varchar(255); unique;not null" json:"email"`
	Phone     string `gorm:"type:varchar(30)" json:"phone"`
	Password  string `gorm:"type:varchar(255); not null" json:"-"`
	Role      string `gorm:"type:varchar(20); not null;default:'parent'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
