package repository

import (
	"context"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
)

// CarrierRepository defines the interface for carrier reference data
type CarrierRepository interface {
	List(ctx context.Context) ([]*entity.Carrier, error)
	// GetByID returns the carrier, or nil if none exists
	GetByID(ctx context.Context, id uint) (*entity.Carrier, error)
	// GetByName returns the carrier, or nil if none exists
	GetByName(ctx context.Context, name string) (*entity.Carrier, error)
}
