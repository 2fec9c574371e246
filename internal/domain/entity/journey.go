package entity

import (
	"time"
)

// Journey represents one tracked border crossing by one user, from departure
// to the final checkpoint. Journeys are never deleted; completion and
// cancellation only flip flags. At most one incomplete journey may exist per
// user at any time.
type Journey struct {
	ID           string
	UserID       int64
	CarrierID    uint
	DepartureUTC time.Time
	Completed    bool
	Cancelled    bool
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Carrier *Carrier
	Events  []JourneyEvent
}
