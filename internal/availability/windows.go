package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// WithinWindows reports whether [start, end) of the member on the date lies inside one
// available window. The range may end exactly at the window end.
func WithinWindows(windows []*domain.AvailabilityWindow, memberID int64, date time.Time, start, end types.TimeString) bool {
	s, e := start.Minutes(), end.Minutes()
	if s < 0 || e < 0 || e < s {
		return false
	}

	for _, group := range groupByMember(windows, date) {
		if group.memberID != memberID {
			continue
		}
		for _, w := range group.windows {
			wStart, wEnd := w.StartTime.Minutes(), w.EndTime.Minutes()
			if wStart < 0 || wEnd < 0 {
				continue
			}
			if wStart <= s && e <= wEnd {
				return true
			}
		}
	}
	return false
}
