package repository

import (
	"context"
	"time"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
)

// JourneyRepository defines the interface for journey persistence
type JourneyRepository interface {
	Create(ctx context.Context, userID int64, carrierID uint, departureUTC time.Time) (*entity.Journey, error)
	GetByID(ctx context.Context, id string) (*entity.Journey, error)
	Complete(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string, notes string) error
	// GetUserActiveJourney returns the user's incomplete journey, or nil if none
	GetUserActiveJourney(ctx context.Context, userID int64) (*entity.Journey, error)
	// ListRecentCompleted returns the latest completed journeys with carrier and event data
	ListRecentCompleted(ctx context.Context, limit int) ([]*entity.Journey, error)
}
