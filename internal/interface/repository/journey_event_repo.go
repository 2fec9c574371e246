package repository

import (
	"context"
	"time"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
	"github.com/KlimZavadski/granica-bot/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormJourneyEventRepository implements the JourneyEventRepository interface
type GormJourneyEventRepository struct {
	db *gorm.DB
}

// NewGormJourneyEventRepository creates a new GORM journey event repository
func NewGormJourneyEventRepository(db *gorm.DB) repository.JourneyEventRepository {
	return &GormJourneyEventRepository{
		db: db,
	}
}

// JourneyEvents GORM model for database mapping
type JourneyEvents struct {
	ID           string    `gorm:"primaryKey;column:id"`
	JourneyID    string    `gorm:"column:journey_id;index"`
	CheckpointID uint      `gorm:"column:checkpoint_id"`
	TimestampUTC time.Time `gorm:"column:timestamp_utc"`
	Source       string    `gorm:"column:source"`
	Timezone     string    `gorm:"column:user_timezone"`
	Lat          *float64  `gorm:"column:lat"`
	Lon          *float64  `gorm:"column:lon"`
	CreatedAt    time.Time

	Checkpoint Checkpoints `gorm:"foreignKey:CheckpointID"`
}

// TableName overrides the default table name
func (JourneyEvents) TableName() string {
	return "journey_events"
}

func journeyEventToEntity(e *JourneyEvents) *entity.JourneyEvent {
	out := &entity.JourneyEvent{
		ID:           e.ID,
		JourneyID:    e.JourneyID,
		CheckpointID: e.CheckpointID,
		TimestampUTC: e.TimestampUTC.UTC(),
		Source:       e.Source,
		Timezone:     e.Timezone,
		Lat:          e.Lat,
		Lon:          e.Lon,
		CreatedAt:    e.CreatedAt,
	}
	if e.Checkpoint.ID != 0 {
		out.Checkpoint = checkpointToEntity(&e.Checkpoint)
	}
	return out
}

// Create inserts a new journey event. Events are immutable once created.
func (r *GormJourneyEventRepository) Create(ctx context.Context, event *entity.JourneyEvent) (*entity.JourneyEvent, error) {
	record := JourneyEvents{
		ID:           uuid.NewString(),
		JourneyID:    event.JourneyID,
		CheckpointID: event.CheckpointID,
		TimestampUTC: event.TimestampUTC.UTC(),
		Source:       event.Source,
		Timezone:     event.Timezone,
		Lat:          event.Lat,
		Lon:          event.Lon,
	}

	result := r.db.WithContext(ctx).Create(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	return journeyEventToEntity(&record), nil
}

// ListByJourney returns a journey's events ordered by timestamp, with
// checkpoint reference data attached
func (r *GormJourneyEventRepository) ListByJourney(ctx context.Context, journeyID string) ([]*entity.JourneyEvent, error) {
	var events []JourneyEvents
	result := r.db.WithContext(ctx).
		Preload("Checkpoint").
		Where("journey_id = ?", journeyID).
		Order("timestamp_utc").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make([]*entity.JourneyEvent, 0, len(events))
	for i := range events {
		out = append(out, journeyEventToEntity(&events[i]))
	}
	return out, nil
}
