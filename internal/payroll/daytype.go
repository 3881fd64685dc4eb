// Package payroll computes shift hours, break allocation and pay.
package payroll

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// DayTypeResolver returns the rate category of a calendar date
type DayTypeResolver func(date time.Time) domain.DayType

// RateResolver returns the hourly rate of a day type, 0 if not configured
type RateResolver func(dayType domain.DayType) float64

// HolidayCalendar active public holidays keyed by date
type HolidayCalendar map[string]struct{}

// NewHolidayCalendar builds a calendar from active holidays only
func NewHolidayCalendar(holidays []*domain.PublicHoliday) HolidayCalendar {
	cal := make(HolidayCalendar, len(holidays))
	for _, h := range holidays {
		if h.IsActive {
			cal[h.Date.Format(types.DateLayout)] = struct{}{}
		}
	}
	return cal
}

// IsHoliday checks the calendar date
func (c HolidayCalendar) IsHoliday(date time.Time) bool {
	_, ok := c[date.Format(types.DateLayout)]
	return ok
}

// DayType resolves the date against the calendar
func (c HolidayCalendar) DayType(date time.Time) domain.DayType {
	return ResolveDayType(date, c.IsHoliday)
}

// ResolveDayType: праздник проверяется раньше дня недели
func ResolveDayType(date time.Time, isHoliday func(time.Time) bool) domain.DayType {
	if isHoliday != nil && isHoliday(date) {
		return domain.DayTypePublicHoliday
	}

	switch date.Weekday() {
	case time.Sunday:
		return domain.DayTypeSunday
	case time.Saturday:
		return domain.DayTypeSaturday
	default:
		return domain.DayTypeWeekday
	}
}

// RateTable active hourly rates keyed by day type
type RateTable map[domain.DayType]float64

// NewRateTable builds a table from active rates only
func NewRateTable(rates []*domain.HourlyRate) RateTable {
	table := make(RateTable, len(rates))
	for _, r := range rates {
		if r.IsActive {
			table[r.DayType] = r.Rate
		}
	}
	return table
}

// Rate returns the rate or 0
func (t RateTable) Rate(dayType domain.DayType) float64 {
	return t[dayType]
}
