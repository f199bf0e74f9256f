package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel replaces gorm.Model so every table shares uint64 primary keys.
type BaseModel struct {
	ID        uint64 `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
