package repository

import (
	"context"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
)

// JourneyEventRepository defines the interface for checkpoint event persistence
type JourneyEventRepository interface {
	Create(ctx context.Context, event *entity.JourneyEvent) (*entity.JourneyEvent, error)
	// ListByJourney returns a journey's events ordered by timestamp
	ListByJourney(ctx context.Context, journeyID string) ([]*entity.JourneyEvent, error)
}
