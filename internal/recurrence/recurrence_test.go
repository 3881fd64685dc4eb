package recurrence

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func date(s string) time.Time {
	d, err := types.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func dates(occ []Occurrence) []string {
	out := make([]string, 0, len(occ))
	for _, o := range occ {
		out = append(out, o.Date.Format(types.DateLayout))
	}
	sort.Strings(out)
	return out
}

func mondayMorning() WeekTemplate {
	var w WeekTemplate
	w[time.Monday] = []SlotTemplate{{Start: "09:00", End: "12:00"}}
	return w
}

func TestExpand_EveryWeekInclusiveEnd(t *testing.T) {
	occ, err := Expand(Pattern{
		StartDate: date("2024-01-01"),
		EndDate:   ptr.Ptr(date("2024-01-15")),
		Cadence:   EveryWeek,
		Week:      mondayMorning(),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "2024-01-08", "2024-01-15"}, dates(occ))
	for _, o := range occ {
		assert.Equal(t, types.TimeString("09:00"), o.Start)
		assert.Equal(t, types.TimeString("12:00"), o.End)
	}
}

func TestExpand_Cadences(t *testing.T) {
	tests := []struct {
		name    string
		cadence Cadence
		want    []string
	}{
		{
			name:    "every two weeks",
			cadence: EveryTwoWeeks,
			want:    []string{"2024-01-01", "2024-01-15", "2024-01-29", "2024-02-12"},
		},
		{
			name:    "every month is 28 days",
			cadence: EveryMonth,
			want:    []string{"2024-01-01", "2024-01-29"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occ, err := Expand(Pattern{
				StartDate: date("2024-01-01"),
				EndDate:   ptr.Ptr(date("2024-02-20")),
				Cadence:   tt.cadence,
				Week:      mondayMorning(),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, dates(occ))
		})
	}
}

func TestExpand_FirstOccurrenceOnOrAfterStart(t *testing.T) {
	var w WeekTemplate
	w[time.Wednesday] = []SlotTemplate{{Start: "10:00", End: "14:00"}, {Start: "15:00", End: "19:00"}}
	w[time.Sunday] = []SlotTemplate{{Start: "11:00", End: "16:00"}}

	// 2024-01-04 четверг
	occ, err := Expand(Pattern{
		StartDate: date("2024-01-04"),
		EndDate:   ptr.Ptr(date("2024-01-14")),
		Cadence:   EveryWeek,
		Week:      w,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-07", "2024-01-10", "2024-01-10", "2024-01-14"}, dates(occ))
}

func TestExpand_DefaultEndIsTwelveWeeks(t *testing.T) {
	p := Pattern{StartDate: date("2024-01-01"), Cadence: EveryWeek, Week: mondayMorning()}

	occ, err := Expand(p)

	require.NoError(t, err)
	assert.Equal(t, date("2024-03-25"), p.ResolvedEnd())
	assert.Len(t, occ, 13)
}

func TestExpand_NoEnabledDaysYieldsNothing(t *testing.T) {
	occ, err := Expand(Pattern{StartDate: date("2024-01-01"), Cadence: EveryWeek})

	require.NoError(t, err)
	assert.Empty(t, occ)
	assert.Equal(t, 0, WeekTemplate{}.EnabledDays())
}

func TestExpand_Deterministic(t *testing.T) {
	p := Pattern{
		StartDate: date("2024-05-01"),
		EndDate:   ptr.Ptr(date("2024-06-30")),
		Cadence:   EveryTwoWeeks,
		Week:      mondayMorning(),
	}

	first, err := Expand(p)
	require.NoError(t, err)
	second, err := Expand(p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExpand_Errors(t *testing.T) {
	_, err := Expand(Pattern{
		StartDate: date("2024-01-10"),
		EndDate:   ptr.Ptr(date("2024-01-01")),
		Cadence:   EveryWeek,
		Week:      mondayMorning(),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = Expand(Pattern{StartDate: date("2024-01-01"), Cadence: "daily", Week: mondayMorning()})
	assert.ErrorIs(t, err, ErrInvalidCadence)

	var w WeekTemplate
	w[time.Friday] = []SlotTemplate{{Start: "18:00", End: "09:00"}}
	_, err = Expand(Pattern{StartDate: date("2024-01-01"), Cadence: EveryWeek, Week: w})
	assert.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestParseCadence(t *testing.T) {
	c, err := ParseCadence("everyMonth")
	require.NoError(t, err)
	assert.Equal(t, EveryMonth, c)

	_, err = ParseCadence("yearly")
	assert.ErrorIs(t, err, ErrInvalidCadence)
}
