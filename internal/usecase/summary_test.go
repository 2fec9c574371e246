package usecase

import (
	"testing"
	"time"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0 min", FormatDuration(0))
	assert.Equal(t, "25 min", FormatDuration(25))
	assert.Equal(t, "59 min", FormatDuration(59))
	assert.Equal(t, "1 h 0 min", FormatDuration(60))
	assert.Equal(t, "1 h 15 min", FormatDuration(75))
	assert.Equal(t, "1 h 40 min", FormatDuration(100))
	assert.Equal(t, "25 h 30 min", FormatDuration(1530))
}

func TestBuildSummaryDurations(t *testing.T) {
	events := []*entity.JourneyEvent{
		{
			TimestampUTC: time.Date(2024, 11, 27, 10, 0, 0, 0, time.UTC),
			Checkpoint:   &entity.Checkpoint{Name: "approaching_border"},
		},
		{
			TimestampUTC: time.Date(2024, 11, 27, 10, 25, 0, 0, time.UTC),
			Checkpoint:   &entity.Checkpoint{Name: "entering_checkpoint_1"},
		},
		{
			TimestampUTC: time.Date(2024, 11, 27, 11, 40, 0, 0, time.UTC),
			Checkpoint:   &entity.Checkpoint{Name: "invited_passport_control_1"},
		},
	}

	summary := BuildSummary(events, "UTC")

	assert.Contains(t, summary, "+25 min since previous")
	assert.Contains(t, summary, "+1 h 15 min since previous")
	assert.Contains(t, summary, "Total border crossing time: 1 h 40 min")
	assert.Contains(t, summary, "Approaching the border")
	assert.Contains(t, summary, "Entering checkpoint #1")
}

func TestBuildSummaryResolvesLegacyAliases(t *testing.T) {
	events := []*entity.JourneyEvent{
		{
			TimestampUTC: time.Date(2024, 11, 27, 10, 0, 0, 0, time.UTC),
			Checkpoint:   &entity.Checkpoint{Name: "passed_passport_control_1"},
		},
	}

	summary := BuildSummary(events, "UTC")
	assert.Contains(t, summary, "Invited to passport control #1")
}

func TestBuildSummarySingleEventHasNoTotal(t *testing.T) {
	events := []*entity.JourneyEvent{
		{
			TimestampUTC: time.Date(2024, 11, 27, 10, 0, 0, 0, time.UTC),
			Checkpoint:   &entity.Checkpoint{Name: "approaching_border"},
		},
	}

	summary := BuildSummary(events, "UTC")
	assert.NotContains(t, summary, "Total border crossing time")
}
