package entity

import (
	"time"
)

// Timestamp sources
const (
	SourceManual = "manual"
	SourceAuto   = "auto"
)

// JourneyEvent represents a single timestamped occurrence of a user reaching
// a checkpoint. Events are immutable once created and, ordered by checkpoint,
// their timestamps are non-decreasing with each consecutive gap bounded by
// the configured maximum.
type JourneyEvent struct {
	ID           string
	JourneyID    string
	CheckpointID uint
	TimestampUTC time.Time
	Source       string // manual entry vs automatic "now"
	Timezone     string // timezone active when the user entered the time
	Lat          *float64
	Lon          *float64
	CreatedAt    time.Time

	Checkpoint *Checkpoint
}
