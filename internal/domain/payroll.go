package domain

import "time"

// DayType payroll rate category of a date
type DayType string

const (
	DayTypeWeekday       DayType = "weekday"
	DayTypeSaturday      DayType = "saturday"
	DayTypeSunday        DayType = "sunday"
	DayTypePublicHoliday DayType = "public_holiday"
)

// Valid returns true for a known day type
func (d DayType) Valid() bool {
	switch d {
	case DayTypeWeekday, DayTypeSaturday, DayTypeSunday, DayTypePublicHoliday:
		return true
	}
	return false
}

// DayTypes все категории в порядке отображения
var DayTypes = []DayType{DayTypeWeekday, DayTypeSaturday, DayTypeSunday, DayTypePublicHoliday}

// HourlyRate wage per hour for a day type
type HourlyRate struct {
	ID        int64
	DayType   DayType
	Rate      float64
	IsActive  bool
	UpdatedAt time.Time
}

// PublicHoliday a date that is paid at the public holiday rate
type PublicHoliday struct {
	ID        int64
	Date      time.Time
	Name      string
	IsActive  bool
	CreatedAt time.Time
}
