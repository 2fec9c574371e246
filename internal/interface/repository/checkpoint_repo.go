package repository

import (
	"context"
	"time"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
	"github.com/KlimZavadski/granica-bot/internal/domain/repository"

	"gorm.io/gorm"
)

// GormCheckpointRepository implements the CheckpointRepository interface
type GormCheckpointRepository struct {
	db *gorm.DB
}

// NewGormCheckpointRepository creates a new GORM checkpoint repository
func NewGormCheckpointRepository(db *gorm.DB) repository.CheckpointRepository {
	return &GormCheckpointRepository{
		db: db,
	}
}

// Checkpoints GORM model for database mapping
type Checkpoints struct {
	ID         uint           `gorm:"primaryKey"`
	Name       string         `gorm:"column:name;unique"`
	OrderIndex int            `gorm:"column:order_index"`
	Required   bool           `gorm:"column:required"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the default table name
func (Checkpoints) TableName() string {
	return "m_checkpoints"
}

func checkpointToEntity(c *Checkpoints) *entity.Checkpoint {
	return &entity.Checkpoint{
		ID:         c.ID,
		Name:       c.Name,
		OrderIndex: c.OrderIndex,
		Required:   c.Required,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		DeletedAt:  c.DeletedAt,
	}
}

// ListMandatory returns the required checkpoints ordered by order_index
func (r *GormCheckpointRepository) ListMandatory(ctx context.Context) ([]*entity.Checkpoint, error) {
	var checkpoints []Checkpoints
	result := r.db.WithContext(ctx).
		Where("required = ?", true).
		Order("order_index").
		Find(&checkpoints)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make([]*entity.Checkpoint, 0, len(checkpoints))
	for i := range checkpoints {
		out = append(out, checkpointToEntity(&checkpoints[i]))
	}
	return out, nil
}

// GetByID finds a checkpoint by ID
func (r *GormCheckpointRepository) GetByID(ctx context.Context, id uint) (*entity.Checkpoint, error) {
	var checkpoint Checkpoints
	result := r.db.WithContext(ctx).First(&checkpoint, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return checkpointToEntity(&checkpoint), nil
}
