package usecase

import (
	"fmt"
	"strings"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
	"github.com/KlimZavadski/granica-bot/pkg/timeutil"
)

// FormatDuration renders a whole-minute duration as "M min", or
// "H h M min" once it reaches an hour
func FormatDuration(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%d h %d min", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%d min", minutes)
}

// BuildSummary renders the completed journey's checkpoint timeline: each
// event with its local time, the elapsed minutes since the previous event,
// and the total crossing time between first and last event. Pure formatting,
// no side effects.
func BuildSummary(events []*entity.JourneyEvent, tzName string) string {
	var b strings.Builder
	b.WriteString("Journey complete!\n\nSummary:\n\n")

	for i, event := range events {
		name := fmt.Sprintf("checkpoint %d", i+1)
		if event.Checkpoint != nil {
			name = CheckpointDisplayName(event.Checkpoint.Name)
		}
		b.WriteString(fmt.Sprintf("%d. %s\n   %s\n", i+1, name, timeutil.FormatInTimezone(event.TimestampUTC, tzName)))

		if i > 0 {
			step := int(event.TimestampUTC.Sub(events[i-1].TimestampUTC).Minutes())
			b.WriteString(fmt.Sprintf("   +%s since previous\n", FormatDuration(step)))
		}
		b.WriteString("\n")
	}

	if len(events) >= 2 {
		total := int(events[len(events)-1].TimestampUTC.Sub(events[0].TimestampUTC).Minutes())
		b.WriteString(fmt.Sprintf("Total border crossing time: %s\n", FormatDuration(total)))
	}

	return b.String()
}
