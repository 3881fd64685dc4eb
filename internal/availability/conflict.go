package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	// ErrSlotConflict кандидат пересекается с существующим бронированием
	ErrSlotConflict = errors.New("availability: slot conflicts with an existing booking")

	// ErrInvalidCandidate границы кандидата не разобрать или конец раньше начала
	ErrInvalidCandidate = errors.New("availability: invalid candidate range")
)

// ConflictError conflict with the numbers of the overlapping bookings
type ConflictError struct {
	BookingNumbers []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSlotConflict, strings.Join(e.BookingNumbers, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}

// Candidate a time range being checked for a team member on a date
type Candidate struct {
	TeamMemberID int64
	Date         time.Time
	Start        types.TimeString
	End          types.TimeString
}

// ConflictResult result of the conflict check
type ConflictResult struct {
	Conflict                  bool
	ConflictingBookingNumbers []string
	// Invalid кандидат некорректен, слот считается занятым
	Invalid bool
}

// Err returns *ConflictError if there is a conflict, ErrInvalidCandidate for a broken candidate
func (r ConflictResult) Err() error {
	if !r.Conflict {
		return nil
	}
	if r.Invalid {
		return ErrInvalidCandidate
	}
	return &ConflictError{BookingNumbers: r.ConflictingBookingNumbers}
}

// Overlaps сравнивает [cStart,cEnd) и [bStart,bEnd) в минутах от начала суток.
// Совпадение начал считается пересечением даже для интервалов нулевой длины.
func Overlaps(cStart, cEnd, bStart, bEnd int) bool {
	return (cStart < bEnd && cEnd > bStart) || cStart == bStart
}

// HasConflict checks the candidate against bookings of the same member on the same date.
// Only confirmed and completed bookings count. excludeID skips the booking being moved.
// A candidate that cannot be parsed is reported as a conflict.
func HasConflict(c Candidate, bookings []*domain.Booking, excludeID *int64) ConflictResult {
	result := ConflictResult{ConflictingBookingNumbers: []string{}}

	cStart, cEnd := c.Start.Minutes(), c.End.Minutes()
	if cStart < 0 || cEnd < 0 || cEnd < cStart {
		result.Conflict = true
		result.Invalid = true
		return result
	}

	for _, b := range bookings {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if !blocks(b, c.TeamMemberID, c.Date) {
			continue
		}

		bStart, bEnd := b.StartTime.Minutes(), b.End().Minutes()
		if bStart < 0 || bEnd < 0 {
			continue
		}

		if Overlaps(cStart, cEnd, bStart, bEnd) {
			result.Conflict = true
			result.ConflictingBookingNumbers = append(result.ConflictingBookingNumbers, b.BookingNumber)
		}
	}

	return result
}

func blocks(b *domain.Booking, memberID int64, date time.Time) bool {
	if !b.BlocksSlots() || b.TeamMemberID != memberID {
		return false
	}
	return date.IsZero() || b.BookingDate.IsZero() || types.SameDate(b.BookingDate, date)
}
