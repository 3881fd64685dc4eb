// Package availability derives bookable slots from availability windows and guards against double booking.
package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Mode how team members are combined in the output
type Mode string

const (
	// ModeSingle все слоты выбранного мастера
	ModeSingle Mode = "single"
	// ModeAny один слот на каждое время, мастер - первый свободный
	ModeAny Mode = "any"
)

// Input data for slot generation on one date
type Input struct {
	Date               time.Time
	DurationMinutes    int
	Windows            []*domain.AvailabilityWindow
	Bookings           []*domain.Booking
	Reservations       []*domain.TemporaryReservation // уже отфильтрованы: живые и не своей сессии
	GranularityMinutes int                            // 0 - 30 минут
	Mode               Mode
}

type memberWindows struct {
	memberID int64
	windows  []*domain.AvailabilityWindow
}

type slotKey struct {
	minutes  int
	memberID int64
}

// GenerateSlots walks every window in granularity steps and keeps each
// [cursor, cursor+duration) that fits the window (the end may touch the window end)
// and does not overlap a blocking booking or reservation of the same member.
// Result is sorted by start time.
func GenerateSlots(in Input) []domain.AvailableSlot {
	slots := []domain.AvailableSlot{}
	if in.DurationMinutes <= 0 {
		return slots
	}

	step := in.GranularityMinutes
	if step <= 0 {
		step = domain.DefaultSlotGranularityMinutes
	}

	seen := make(map[slotKey]struct{})
	for _, group := range groupByMember(in.Windows, in.Date) {
		for _, w := range group.windows {
			start, end := w.StartTime.Minutes(), w.EndTime.Minutes()
			if start < 0 || end < 0 {
				continue
			}

			for cursor := start; cursor+in.DurationMinutes <= end; cursor += step {
				slotEnd := cursor + in.DurationMinutes
				if bookedAt(in.Bookings, group.memberID, in.Date, cursor, slotEnd) ||
					reservedAt(in.Reservations, group.memberID, in.Date, cursor, slotEnd) {
					continue
				}

				key := slotKey{minutes: cursor, memberID: group.memberID}
				if in.Mode == ModeAny {
					key.memberID = 0
				}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}

				startTS, _ := types.FromMinutes(cursor)
				endTS, _ := types.FromMinutes(slotEnd)
				slots = append(slots, domain.AvailableSlot{
					Time:         startTS,
					EndTime:      endTS,
					TeamMemberID: group.memberID,
				})
			}
		}
	}

	// Формат HH:MM фиксированной ширины, строковое сравнение корректно
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Time < slots[j].Time
	})

	return slots
}

// groupByMember keeps available windows of the date grouped in order of first appearance
func groupByMember(windows []*domain.AvailabilityWindow, date time.Time) []memberWindows {
	var groups []memberWindows
	index := make(map[int64]int)

	for _, w := range windows {
		if !w.IsAvailable {
			continue
		}
		if !date.IsZero() && !w.Date.IsZero() && !types.SameDate(w.Date, date) {
			continue
		}

		i, ok := index[w.TeamMemberID]
		if !ok {
			i = len(groups)
			index[w.TeamMemberID] = i
			groups = append(groups, memberWindows{memberID: w.TeamMemberID})
		}
		groups[i].windows = append(groups[i].windows, w)
	}

	return groups
}

func bookedAt(bookings []*domain.Booking, memberID int64, date time.Time, start, end int) bool {
	for _, b := range bookings {
		if !blocks(b, memberID, date) {
			continue
		}
		bStart, bEnd := b.StartTime.Minutes(), b.End().Minutes()
		if bStart < 0 || bEnd < 0 {
			continue
		}
		if Overlaps(start, end, bStart, bEnd) {
			return true
		}
	}
	return false
}

func reservedAt(reservations []*domain.TemporaryReservation, memberID int64, date time.Time, start, end int) bool {
	for _, r := range reservations {
		if r.TeamMemberID != memberID {
			continue
		}
		if !date.IsZero() && !r.Date.IsZero() && !types.SameDate(r.Date, date) {
			continue
		}
		rStart, rEnd := r.StartTime.Minutes(), r.EndTime.Minutes()
		if rStart < 0 || rEnd < 0 {
			continue
		}
		if Overlaps(start, end, rStart, rEnd) {
			return true
		}
	}
	return false
}
