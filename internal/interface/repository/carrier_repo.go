package repository

import (
	"context"
	"errors"
	"time"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
	"github.com/KlimZavadski/granica-bot/internal/domain/repository"

	"gorm.io/gorm"
)

// GormCarrierRepository implements the CarrierRepository interface
type GormCarrierRepository struct {
	db *gorm.DB
}

// NewGormCarrierRepository creates a new GORM carrier repository
func NewGormCarrierRepository(db *gorm.DB) repository.CarrierRepository {
	return &GormCarrierRepository{
		db: db,
	}
}

// Carriers GORM model for database mapping
type Carriers struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"column:name;unique"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Carriers) TableName() string {
	return "m_carriers"
}

func carrierToEntity(c *Carriers) *entity.Carrier {
	return &entity.Carrier{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		DeletedAt: c.DeletedAt,
	}
}

// List returns all carriers
func (r *GormCarrierRepository) List(ctx context.Context) ([]*entity.Carrier, error) {
	var carriers []Carriers
	result := r.db.WithContext(ctx).Order("name").Find(&carriers)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make([]*entity.Carrier, 0, len(carriers))
	for i := range carriers {
		out = append(out, carrierToEntity(&carriers[i]))
	}
	return out, nil
}

// GetByID finds a carrier by ID, returning nil when no such carrier exists
func (r *GormCarrierRepository) GetByID(ctx context.Context, id uint) (*entity.Carrier, error) {
	var carrier Carriers
	result := r.db.WithContext(ctx).First(&carrier, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return carrierToEntity(&carrier), nil
}

// GetByName finds a carrier by its display name, returning nil when no such
// carrier exists
func (r *GormCarrierRepository) GetByName(ctx context.Context, name string) (*entity.Carrier, error) {
	var carrier Carriers
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&carrier)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return carrierToEntity(&carrier), nil
}
