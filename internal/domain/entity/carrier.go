package entity

import (
	"time"

	"gorm.io/gorm"
)

// Carrier represents a bus carrier crossing the border
type Carrier struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
