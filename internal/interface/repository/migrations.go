package repository

import (
	"github.com/KlimZavadski/granica-bot/internal/domain/entity"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the relational schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Carriers{},
		&Checkpoints{},
		&Journeys{},
		&JourneyEvents{},
	)
}

// SeedCheckpoints inserts the canonical mandatory checkpoint sequence when
// the table is empty. Existing rows are left untouched.
func SeedCheckpoints(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Checkpoints{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i, name := range entity.MandatoryCheckpointSequence {
		checkpoint := Checkpoints{
			Name:       name,
			OrderIndex: i,
			Required:   true,
		}
		if err := db.Create(&checkpoint).Error; err != nil {
			return err
		}
	}
	return nil
}
