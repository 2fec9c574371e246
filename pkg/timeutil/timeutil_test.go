package timeutil

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUTCIdempotent(t *testing.T) {
	minsk, err := time.LoadLocation("Europe/Minsk")
	require.NoError(t, err)

	instants := []time.Time{
		time.Date(2024, 11, 27, 20, 0, 0, 0, minsk),
		time.Date(2024, 11, 27, 17, 0, 0, 0, time.UTC),
		time.Now(),
	}

	for _, instant := range instants {
		once := ToUTC(instant)
		twice := ToUTC(once)
		assert.True(t, once.Equal(twice))
		assert.Equal(t, time.UTC, twice.Location())
	}
}

func TestLocalToUTC(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		clock   string
		tz      string
		wantUTC time.Time
	}{
		{
			name:    "minsk is UTC+3 year round",
			date:    "2024-11-27",
			clock:   "20:00",
			tz:      "Europe/Minsk",
			wantUTC: time.Date(2024, 11, 27, 17, 0, 0, 0, time.UTC),
		},
		{
			name:    "warsaw summer time",
			date:    "2024-07-01",
			clock:   "12:00",
			tz:      "Europe/Warsaw",
			wantUTC: time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:    "warsaw winter time",
			date:    "2024-01-15",
			clock:   "12:00",
			tz:      "Europe/Warsaw",
			wantUTC: time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC),
		},
		{
			name:    "utc passthrough",
			date:    "2024-11-29",
			clock:   "14:30",
			tz:      "UTC",
			wantUTC: time.Date(2024, 11, 29, 14, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LocalToUTC(tt.date, tt.clock, tt.tz)
			require.NoError(t, err)
			assert.True(t, tt.wantUTC.Equal(got), "want %s, got %s", tt.wantUTC, got)
		})
	}
}

func TestLocalToUTCInvalidFormat(t *testing.T) {
	_, err := LocalToUTC("27.11.2024", "20:00", "Europe/Minsk")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = LocalToUTC("2024-11-27", "8pm", "Europe/Minsk")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLocalToUTCUnknownTimezone(t *testing.T) {
	_, err := LocalToUTC("2024-11-27", "20:00", "Europe/Atlantis")
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestFormatInTimezone(t *testing.T) {
	instant := time.Date(2024, 11, 29, 11, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-11-29 14:30 (UTC+3)", FormatInTimezone(instant, "Europe/Minsk"))
	assert.Equal(t, "2024-11-29 11:30 (UTC+0)", FormatInTimezone(instant, "UTC"))
}

func TestFormatInTimezoneUnknownZoneFallsBackToUTC(t *testing.T) {
	instant := time.Date(2024, 11, 29, 11, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-11-29 11:30 (UTC+0)", FormatInTimezone(instant, "Europe/Atlantis"))
}

func TestFormatInTimezoneFractionalOffsetsFloor(t *testing.T) {
	instant := time.Date(2024, 11, 29, 12, 0, 0, 0, time.UTC)

	// Newfoundland is UTC-3:30 in winter; the offset floors to -4
	assert.Equal(t, "2024-11-29 08:30 (UTC-4)", FormatInTimezone(instant, "America/St_Johns"))
	// Kolkata is UTC+5:30 year round; the offset floors to +5
	assert.Equal(t, "2024-11-29 17:30 (UTC+5)", FormatInTimezone(instant, "Asia/Kolkata"))
}

func TestLocalToUTCFormatRoundTrip(t *testing.T) {
	dates := []string{"2024-03-30", "2024-03-31", "2024-11-27", "2025-06-15"}
	clocks := []string{"00:00", "01:43", "12:00", "23:59"}
	zones := []string{"Europe/Minsk", "Europe/Warsaw", "Europe/Vilnius", "UTC"}

	for _, date := range dates {
		for _, clock := range clocks {
			for _, zone := range zones {
				instant, err := LocalToUTC(date, clock, zone)
				require.NoError(t, err)

				rendered := FormatInTimezone(instant, zone)
				assert.True(t, strings.HasPrefix(rendered, date+" "+clock),
					"%s %s in %s rendered as %s", date, clock, zone, rendered)
			}
		}
	}
}

func TestInferCheckpointTimeSameDay(t *testing.T) {
	// Departure 2024-11-27 10:00 Minsk; checkpoint 11:30 the same day
	reference := time.Date(2024, 11, 27, 7, 0, 0, 0, time.UTC)

	got, err := InferCheckpointTime("11:30", reference, "Europe/Minsk")
	require.NoError(t, err)

	want := time.Date(2024, 11, 27, 8, 30, 0, 0, time.UTC)
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
}

func TestInferCheckpointTimeMidnightRollover(t *testing.T) {
	// Departure 2024-11-27 20:00 Minsk (17:00 UTC); checkpoint entered as
	// "01:43" resolves to 2024-11-28 01:43 Minsk, after the departure
	reference := time.Date(2024, 11, 27, 17, 0, 0, 0, time.UTC)

	got, err := InferCheckpointTime("01:43", reference, "Europe/Minsk")
	require.NoError(t, err)

	want := time.Date(2024, 11, 27, 22, 43, 0, 0, time.UTC) // 2024-11-28 01:43 Minsk
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
	assert.True(t, got.After(reference))
}

func TestInferCheckpointTimeEqualWallClockAdvancesADay(t *testing.T) {
	reference := time.Date(2024, 11, 27, 17, 0, 0, 0, time.UTC) // 20:00 Minsk

	got, err := InferCheckpointTime("20:00", reference, "Europe/Minsk")
	require.NoError(t, err)

	want := time.Date(2024, 11, 28, 17, 0, 0, 0, time.UTC)
	assert.True(t, want.Equal(got))
}

func TestInferCheckpointTimeAlwaysAfterReference(t *testing.T) {
	reference := time.Date(2024, 11, 27, 17, 0, 0, 0, time.UTC)

	for _, clock := range []string{"00:00", "06:15", "12:00", "19:59", "20:00", "20:01", "23:59"} {
		got, err := InferCheckpointTime(clock, reference, "Europe/Minsk")
		require.NoError(t, err)
		assert.True(t, got.After(reference), "%s resolved to %s, not after %s", clock, got, reference)
	}
}

func TestInferCheckpointTimeInvalidFormat(t *testing.T) {
	reference := time.Date(2024, 11, 27, 17, 0, 0, 0, time.UTC)

	for _, input := range []string{"", "now-ish", "25:00", "12.30"} {
		_, err := InferCheckpointTime(input, reference, "Europe/Minsk")
		assert.ErrorIs(t, err, ErrInvalidFormat, "input %q", input)
	}
}
