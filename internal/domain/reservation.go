package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// TemporaryReservation short-lived hold on a slot owned by a shopper session
type TemporaryReservation struct {
	ID           int64
	SessionID    string
	TeamMemberID int64
	ShopID       int64
	ServiceID    int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// IsLive returns true until the hold expires
func (r *TemporaryReservation) IsLive(now time.Time) bool {
	return r.ExpiresAt.After(now)
}

// BlocksFor returns true if the hold blocks the slot for another session
func (r *TemporaryReservation) BlocksFor(sessionID string, now time.Time) bool {
	return r.IsLive(now) && r.SessionID != sessionID
}
