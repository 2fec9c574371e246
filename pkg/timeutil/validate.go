package timeutil

import (
	"errors"
	"time"
)

var (
	// ErrOutOfOrder indicates a checkpoint instant earlier than the previous one
	ErrOutOfOrder = errors.New("checkpoint time is before the previous checkpoint")
	// ErrGapTooLarge indicates an implausibly long gap between consecutive checkpoints
	ErrGapTooLarge = errors.New("gap since the previous checkpoint is too large")
)

// DefaultMaxCheckpointGap bounds the plausible time between consecutive checkpoints
const DefaultMaxCheckpointGap = 24 * time.Hour

// ValidateCheckpointOrder checks that a proposed checkpoint instant follows the
// previous instant in the journey and that the gap between them stays within
// maxGap. The two rejection reasons are distinguishable so callers can tell
// the user whether the time was out of order or the gap implausible.
// A nil previous (no reference at all) accepts any candidate.
func ValidateCheckpointOrder(candidate time.Time, previous *time.Time, maxGap time.Duration) error {
	if previous == nil {
		return nil
	}

	c := ToUTC(candidate)
	p := ToUTC(*previous)

	if c.Before(p) {
		return ErrOutOfOrder
	}
	if c.Sub(p) > maxGap {
		return ErrGapTooLarge
	}
	return nil
}
