package repository

import (
	"context"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
)

// SessionRepository defines the interface for the ephemeral conversation
// session store, keyed by user identifier
type SessionRepository interface {
	// Get returns the user's session, or nil if none exists
	Get(ctx context.Context, userID int64) (*entity.Session, error)
	Save(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, userID int64) error
}
