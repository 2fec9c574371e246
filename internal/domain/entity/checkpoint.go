package entity

import (
	"time"

	"gorm.io/gorm"
)

// Checkpoint represents a fixed named stage of the border-crossing process.
// Mandatory checkpoints form a total order by OrderIndex with no gaps; a
// journey visits them strictly in that order.
type Checkpoint struct {
	ID         uint
	Name       string // stable internal key, e.g. "entering_checkpoint_1"
	OrderIndex int
	Required   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt
}
