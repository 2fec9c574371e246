package repository

import (
	"context"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
)

// UpdateRepository defines the interface for the inbound update log
type UpdateRepository interface {
	Save(ctx context.Context, update *entity.Update) error
	FindUnprocessed(ctx context.Context, limit int) ([]*entity.Update, error)
	MarkProcessed(ctx context.Context, updateID string, status string, errorDetail string) error
}
