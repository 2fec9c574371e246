package repository

import (
	"context"
	"errors"
	"time"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
	"github.com/KlimZavadski/granica-bot/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormJourneyRepository implements the JourneyRepository interface
type GormJourneyRepository struct {
	db *gorm.DB
}

// NewGormJourneyRepository creates a new GORM journey repository
func NewGormJourneyRepository(db *gorm.DB) repository.JourneyRepository {
	return &GormJourneyRepository{
		db: db,
	}
}

// Journeys GORM model for database mapping
type Journeys struct {
	ID           string    `gorm:"primaryKey;column:id"`
	UserID       int64     `gorm:"column:user_id;index"`
	CarrierID    uint      `gorm:"column:carrier_id"`
	DepartureUTC time.Time `gorm:"column:departure_utc"`
	Completed    bool      `gorm:"column:completed;index"`
	Cancelled    bool      `gorm:"column:cancelled"`
	Notes        string    `gorm:"column:notes"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Carrier Carriers        `gorm:"foreignKey:CarrierID"`
	Events  []JourneyEvents `gorm:"foreignKey:JourneyID"`
}

// TableName overrides the default table name
func (Journeys) TableName() string {
	return "journeys"
}

func journeyToEntity(j *Journeys) *entity.Journey {
	out := &entity.Journey{
		ID:           j.ID,
		UserID:       j.UserID,
		CarrierID:    j.CarrierID,
		DepartureUTC: j.DepartureUTC.UTC(),
		Completed:    j.Completed,
		Cancelled:    j.Cancelled,
		Notes:        j.Notes,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
	if j.Carrier.ID != 0 {
		out.Carrier = carrierToEntity(&j.Carrier)
	}
	for i := range j.Events {
		out.Events = append(out.Events, *journeyEventToEntity(&j.Events[i]))
	}
	return out
}

// Create inserts a new incomplete journey
func (r *GormJourneyRepository) Create(ctx context.Context, userID int64, carrierID uint, departureUTC time.Time) (*entity.Journey, error) {
	journey := Journeys{
		ID:           uuid.NewString(),
		UserID:       userID,
		CarrierID:    carrierID,
		DepartureUTC: departureUTC.UTC(),
	}

	result := r.db.WithContext(ctx).Create(&journey)
	if result.Error != nil {
		return nil, result.Error
	}
	return journeyToEntity(&journey), nil
}

// GetByID finds a journey by ID
func (r *GormJourneyRepository) GetByID(ctx context.Context, id string) (*entity.Journey, error) {
	var journey Journeys
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&journey)
	if result.Error != nil {
		return nil, result.Error
	}
	return journeyToEntity(&journey), nil
}

// Complete marks a journey as completed
func (r *GormJourneyRepository) Complete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Journeys{}).
		Where("id = ?", id).
		Update("completed", true).Error
}

// Cancel marks a journey as cancelled. The completed flag is set too so the
// journey no longer counts as active.
func (r *GormJourneyRepository) Cancel(ctx context.Context, id string, notes string) error {
	return r.db.WithContext(ctx).
		Model(&Journeys{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"completed": true,
			"cancelled": true,
			"notes":     notes,
		}).Error
}

// GetUserActiveJourney returns the user's latest incomplete journey, or nil
func (r *GormJourneyRepository) GetUserActiveJourney(ctx context.Context, userID int64) (*entity.Journey, error) {
	var journey Journeys
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND completed = ?", userID, false).
		Order("created_at DESC").
		First(&journey)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return journeyToEntity(&journey), nil
}

// ListRecentCompleted returns the latest completed journeys with nested
// carrier and event data
func (r *GormJourneyRepository) ListRecentCompleted(ctx context.Context, limit int) ([]*entity.Journey, error) {
	var journeys []Journeys
	result := r.db.WithContext(ctx).
		Preload("Carrier").
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp_utc")
		}).
		Where("completed = ? AND cancelled = ?", true, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&journeys)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make([]*entity.Journey, 0, len(journeys))
	for i := range journeys {
		out = append(out, journeyToEntity(&journeys[i]))
	}
	return out, nil
}
