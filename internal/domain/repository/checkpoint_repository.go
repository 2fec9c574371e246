package repository

import (
	"context"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
)

// CheckpointRepository defines the interface for checkpoint reference data
type CheckpointRepository interface {
	// ListMandatory returns the required checkpoints ordered by their ordinal position
	ListMandatory(ctx context.Context) ([]*entity.Checkpoint, error)
	GetByID(ctx context.Context, id uint) (*entity.Checkpoint, error)
}
