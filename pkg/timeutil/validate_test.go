package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCheckpointOrder(t *testing.T) {
	base := time.Date(2024, 11, 27, 11, 15, 0, 0, time.UTC)

	tests := []struct {
		name      string
		candidate time.Time
		previous  *time.Time
		wantErr   error
	}{
		{
			name:      "no previous accepts anything",
			candidate: base.Add(-100 * time.Hour),
			previous:  nil,
			wantErr:   nil,
		},
		{
			name:      "after previous within gap",
			candidate: base.Add(30 * time.Minute),
			previous:  &base,
			wantErr:   nil,
		},
		{
			name:      "equal timestamps accepted",
			candidate: base,
			previous:  &base,
			wantErr:   nil,
		},
		{
			name:      "before previous rejected",
			candidate: base.Add(-135 * time.Minute), // 09:00 against 11:15
			previous:  &base,
			wantErr:   ErrOutOfOrder,
		},
		{
			name:      "thirty hour gap rejected",
			candidate: base.Add(30 * time.Hour),
			previous:  &base,
			wantErr:   ErrGapTooLarge,
		},
		{
			name:      "exactly at the gap limit accepted",
			candidate: base.Add(24 * time.Hour),
			previous:  &base,
			wantErr:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCheckpointOrder(tt.candidate, tt.previous, DefaultMaxCheckpointGap)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCheckpointOrderNormalizesToUTC(t *testing.T) {
	minsk, err := time.LoadLocation("Europe/Minsk")
	assert.NoError(t, err)

	// 14:15 Minsk is 11:15 UTC; a 11:45 UTC candidate is 30 minutes later
	previous := time.Date(2024, 11, 27, 14, 15, 0, 0, minsk)
	candidate := time.Date(2024, 11, 27, 11, 45, 0, 0, time.UTC)

	assert.NoError(t, ValidateCheckpointOrder(candidate, &previous, DefaultMaxCheckpointGap))
}
