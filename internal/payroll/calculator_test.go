package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// 2024-01-10 среда
var wednesday = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return wednesday.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func closedBreak(start, end time.Time) domain.Break {
	return domain.Break{Start: start, End: ptr.Ptr(end), DurationMinutes: domain.BreakMinutes(start, end)}
}

func rates() RateTable {
	return NewRateTable([]*domain.HourlyRate{
		{DayType: domain.DayTypeWeekday, Rate: 25, IsActive: true},
		{DayType: domain.DayTypeSaturday, Rate: 30, IsActive: true},
		{DayType: domain.DayTypeSunday, Rate: 35, IsActive: false},
		{DayType: domain.DayTypePublicHoliday, Rate: 50, IsActive: true},
	})
}

func TestCalculateShift_EightHoursWithHalfHourBreak(t *testing.T) {
	shift := &domain.Shift{
		TeamMemberID: 1,
		Date:         wednesday,
		ShiftStart:   at(9, 0),
		ShiftEnd:     ptr.Ptr(at(17, 0)),
		Breaks:       []domain.Break{closedBreak(at(12, 0), at(12, 30))},
		Status:       domain.ShiftCompleted,
	}

	calc := CalculateShift(shift, HolidayCalendar{}.DayType, rates().Rate, at(20, 0))

	assert.Equal(t, 30, calc.TotalBreakMinutes)
	assert.Equal(t, 20, calc.PaidBreakMinutes)
	assert.Equal(t, 10, calc.UnpaidBreakMinutes)
	assert.InDelta(t, 8.0, calc.GrossHours, 1e-9)
	assert.InDelta(t, 7.8333, calc.NetHours, 1e-4)
	assert.Equal(t, domain.DayTypeWeekday, calc.DayType)
	assert.Equal(t, 25.0, calc.HourlyRate)
	assert.InDelta(t, 195.83, calc.TotalPay, 0.01)
	assert.Equal(t, 195.83, Round2(calc.TotalPay))
	assert.False(t, calc.Live)
}

func TestCalculateShift_ShortBreaksFullyPaid(t *testing.T) {
	shift := &domain.Shift{
		Date:       wednesday,
		ShiftStart: at(9, 0),
		ShiftEnd:   ptr.Ptr(at(13, 0)),
		Breaks: []domain.Break{
			closedBreak(at(10, 0), at(10, 10)),
			closedBreak(at(11, 0), at(11, 10)),
		},
	}

	calc := CalculateShift(shift, nil, rates().Rate, time.Time{})

	assert.Equal(t, 20, calc.TotalBreakMinutes)
	assert.Equal(t, 20, calc.PaidBreakMinutes)
	assert.Equal(t, 0, calc.UnpaidBreakMinutes)
	assert.InDelta(t, 4.0, calc.NetHours, 1e-9)
	assert.InDelta(t, 100.0, calc.TotalPay, 1e-9)
}

func TestCalculateShift_LiveShiftUsesNowAndIgnoresOpenBreak(t *testing.T) {
	shift := &domain.Shift{
		Date:       wednesday,
		ShiftStart: at(9, 0),
		Breaks: []domain.Break{
			closedBreak(at(10, 0), at(10, 45)),
			{Start: at(12, 0)},
		},
		Status: domain.ShiftActive,
	}

	calc := CalculateShift(shift, HolidayCalendar{}.DayType, rates().Rate, at(12, 30))

	assert.True(t, calc.Live)
	assert.Equal(t, 45, calc.TotalBreakMinutes)
	assert.Equal(t, 25, calc.UnpaidBreakMinutes)
	assert.InDelta(t, 3.5, calc.GrossHours, 1e-9)
	assert.InDelta(t, 3.5-25.0/60, calc.NetHours, 1e-9)
}

func TestCalculateShift_MissingRateIsZero(t *testing.T) {
	sunday := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	shift := &domain.Shift{
		Date:       sunday,
		ShiftStart: sunday.Add(10 * time.Hour),
		ShiftEnd:   ptr.Ptr(sunday.Add(14 * time.Hour)),
	}

	calc := CalculateShift(shift, HolidayCalendar{}.DayType, rates().Rate, time.Time{})

	assert.Equal(t, domain.DayTypeSunday, calc.DayType)
	assert.Equal(t, 0.0, calc.HourlyRate)
	assert.Equal(t, 0.0, calc.TotalPay)
	assert.InDelta(t, 4.0, calc.NetHours, 1e-9)
}

func TestCalculateShift_PublicHolidayRate(t *testing.T) {
	cal := NewHolidayCalendar([]*domain.PublicHoliday{{Date: wednesday, Name: "Holiday", IsActive: true}})
	shift := &domain.Shift{
		Date:       wednesday,
		ShiftStart: at(9, 0),
		ShiftEnd:   ptr.Ptr(at(11, 0)),
	}

	calc := CalculateShift(shift, cal.DayType, rates().Rate, time.Time{})

	assert.Equal(t, domain.DayTypePublicHoliday, calc.DayType)
	assert.InDelta(t, 100.0, calc.TotalPay, 1e-9)
}

func TestResolveDayType(t *testing.T) {
	active := NewHolidayCalendar([]*domain.PublicHoliday{
		{Date: wednesday, IsActive: true},
		{Date: wednesday.AddDate(0, 0, 1), IsActive: false},
	})

	assert.Equal(t, domain.DayTypePublicHoliday, active.DayType(wednesday))
	assert.Equal(t, domain.DayTypeWeekday, active.DayType(wednesday.AddDate(0, 0, 1)))
	assert.Equal(t, domain.DayTypeSaturday, active.DayType(wednesday.AddDate(0, 0, 3)))
	assert.Equal(t, domain.DayTypeSunday, active.DayType(wednesday.AddDate(0, 0, 4)))
	assert.Equal(t, domain.DayTypeWeekday, ResolveDayType(wednesday, nil))
}

func TestAggregateTimesheet(t *testing.T) {
	saturday := wednesday.AddDate(0, 0, 3)
	shifts := []*domain.Shift{
		{
			TeamMemberID: 2,
			Date:         wednesday,
			ShiftStart:   at(9, 0),
			ShiftEnd:     ptr.Ptr(at(17, 0)),
			Breaks:       []domain.Break{closedBreak(at(12, 0), at(12, 30))},
			Status:       domain.ShiftCompleted,
		},
		{
			TeamMemberID: 2,
			Date:         saturday,
			ShiftStart:   saturday.Add(10 * time.Hour),
			ShiftEnd:     ptr.Ptr(saturday.Add(12 * time.Hour)),
			Status:       domain.ShiftPaid,
		},
		{
			TeamMemberID: 1,
			Date:         wednesday,
			ShiftStart:   at(8, 0),
			ShiftEnd:     ptr.Ptr(at(9, 0)),
			Status:       domain.ShiftCompleted,
		},
		{
			TeamMemberID: 1,
			Date:         wednesday,
			ShiftStart:   at(10, 0),
			Status:       domain.ShiftActive,
		},
	}

	rows := AggregateTimesheet(shifts, HolidayCalendar{}.DayType, rates().Rate)

	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].TeamMemberID)
	assert.Equal(t, 1, rows[0].DaysWorked)
	assert.InDelta(t, 1.0, rows[0].NetHours, 1e-9)
	assert.InDelta(t, 25.0, rows[0].TotalPay, 1e-9)

	assert.Equal(t, int64(2), rows[1].TeamMemberID)
	assert.Equal(t, 2, rows[1].DaysWorked)
	assert.Equal(t, 30, rows[1].TotalBreakMinutes)
	assert.InDelta(t, 7.8333+2, rows[1].NetHours, 1e-3)
	assert.InDelta(t, 195.83+60, rows[1].TotalPay, 0.01)
}
