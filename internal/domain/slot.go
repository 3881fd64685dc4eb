package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AvailabilityWindow a coarse block of time a team member can work at a shop on a date
type AvailabilityWindow struct {
	ID           int64
	TeamMemberID int64
	ShopID       int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsAvailable  bool
	CreatedAt    time.Time
}

// DurationMinutes returns the window length
func (w *AvailabilityWindow) DurationMinutes() int {
	return w.StartTime.MinutesUntil(w.EndTime)
}

// AvailableSlot a concrete bookable start time with a team member
type AvailableSlot struct {
	Time         types.TimeString
	EndTime      types.TimeString
	TeamMemberID int64
}

// WindowsFilter фильтр окон доступности
type WindowsFilter struct {
	ShopID        int64
	TeamMemberIDs []int64 // пусто - все мастера салона
	StartDate     time.Time
	EndDate       time.Time
	OnlyAvailable bool
}
