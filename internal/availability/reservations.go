package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BlockingReservations keeps holds that are still live and belong to another session
func BlockingReservations(all []*domain.TemporaryReservation, sessionID string, now time.Time) []*domain.TemporaryReservation {
	out := make([]*domain.TemporaryReservation, 0, len(all))
	for _, r := range all {
		if r.BlocksFor(sessionID, now) {
			out = append(out, r)
		}
	}
	return out
}
