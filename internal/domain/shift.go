package domain

import "time"

// ShiftStatus represents the payroll state of a shift
type ShiftStatus string

const (
	ShiftActive    ShiftStatus = "active"
	ShiftCompleted ShiftStatus = "completed"
	ShiftPaid      ShiftStatus = "paid"
)

// Break a recorded break inside a shift. End is nil while the break is open.
type Break struct {
	Start           time.Time  `json:"start"`
	End             *time.Time `json:"end"`
	DurationMinutes int        `json:"duration_minutes"`
}

// IsOpen returns true if the break has not ended yet
func (b Break) IsOpen() bool {
	return b.End == nil
}

// Shift a clock-in/clock-out record of a team member
type Shift struct {
	ID                int64
	TeamMemberID      int64
	ShopID            int64
	Date              time.Time
	ShiftStart        time.Time
	ShiftEnd          *time.Time
	Breaks            []Break
	TotalBreakMinutes int
	Status            ShiftStatus
	PaidAt            *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsActive returns true while the member is clocked in
func (s *Shift) IsActive() bool {
	return s.Status == ShiftActive
}

// OpenBreakIndex returns the index of the open break or -1
func (s *Shift) OpenBreakIndex() int {
	for i := range s.Breaks {
		if s.Breaks[i].IsOpen() {
			return i
		}
	}
	return -1
}

// ClosedBreakMinutes sums durations of finished breaks
func (s *Shift) ClosedBreakMinutes() int {
	total := 0
	for _, b := range s.Breaks {
		if !b.IsOpen() {
			total += b.DurationMinutes
		}
	}
	return total
}

// BreakMinutes length of a break in whole minutes
func BreakMinutes(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Round(time.Minute) / time.Minute)
}

// ShiftsFilter фильтр смен
type ShiftsFilter struct {
	ShopID        *int64
	TeamMemberIDs []int64
	StartDate     time.Time
	EndDate       time.Time
	Statuses      []ShiftStatus
}
