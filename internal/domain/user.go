package domain

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:64;uniqueIndex;not null"`
	Email     string `gorm:"size:255"`
	FullName  string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
