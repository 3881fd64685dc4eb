package zoned

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func TestLocalToUTC(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		clock string
		zone  string
		want  time.Time
	}{
		{
			name:  "utc zone",
			date:  "2024-01-15",
			clock: "09:00",
			zone:  "UTC",
			want:  time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "london summer time",
			date:  "2024-07-01",
			clock: "10:00",
			zone:  "Europe/London",
			want:  time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "sydney daylight time",
			date:  "2024-01-10",
			clock: "09:30:00",
			zone:  "Australia/Sydney",
			want:  time.Date(2024, 1, 9, 22, 30, 0, 0, time.UTC),
		},
		{
			name:  "new york right after spring forward",
			date:  "2024-03-10",
			clock: "03:30",
			zone:  "America/New_York",
			want:  time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC),
		},
		{
			name:  "new york ambiguous hour after fall back takes first occurrence",
			date:  "2024-11-03",
			clock: "01:30",
			zone:  "America/New_York",
			want:  time.Date(2024, 11, 3, 5, 30, 0, 0, time.UTC),
		},
		{
			name:  "new york day after fall back",
			date:  "2024-11-04",
			clock: "09:00",
			zone:  "America/New_York",
			want:  time.Date(2024, 11, 4, 14, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LocalToUTC(tt.date, tt.clock, tt.zone)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestLocalToUTC_MatchesTimeDateOutsideTransitions(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		date := day.AddDate(0, 0, i)
		got := LocalToUTCIn(date, types.MustTimeString("12:00"), loc)
		want := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, loc)
		assert.True(t, want.Equal(got), "date %s", date.Format(types.DateLayout))
	}
}

func TestLocalToUTC_Errors(t *testing.T) {
	_, err := LocalToUTC("2024-13-01", "09:00", "UTC")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = LocalToUTC("2024-01-01", "9am", "UTC")
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)

	_, err = LocalToUTC("2024-01-01", "09:00", "Mars/Olympus")
	assert.ErrorIs(t, err, ErrUnknownZone)
}

func TestUTCToLocal(t *testing.T) {
	loc, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	date, clock := UTCToLocal(time.Date(2024, 1, 9, 22, 30, 0, 0, time.UTC), loc)
	assert.Equal(t, "2024-01-10", date.Format(types.DateLayout))
	assert.Equal(t, types.TimeString("09:30"), clock)
}
