package create_booking

import (
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ShopID       int64   `json:"shopId"`
	ServiceID    int64   `json:"serviceId"`
	TeamMemberID int64   `json:"teamMemberId"`
	ClientID     *int64  `json:"clientId,omitempty"` // только для администратора
	BookingDate  string  `json:"bookingDate"`        // "2025-10-15"
	StartTime    string  `json:"startTime"`          // "10:00"
	Notes        *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(caller domain.Caller, sessionID, idempotencyKey string) (*createBooking.Request, error) {
	bookingDate, err := types.ParseDate(r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	req := &createBooking.Request{
		Caller:       caller,
		SessionID:    sessionID,
		ShopID:       r.ShopID,
		ServiceID:    r.ServiceID,
		TeamMemberID: r.TeamMemberID,
		ClientID:     r.ClientID,
		Date:         bookingDate,
		StartTime:    startTime,
		Notes:        r.Notes,
	}
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		req.IdempotencyKey = &key
	}

	return req, nil
}
