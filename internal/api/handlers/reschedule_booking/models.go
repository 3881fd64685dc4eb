package reschedule_booking

import (
	"errors"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	TeamMemberID *int64 `json:"teamMemberId,omitempty"` // не указан - мастер прежний
	BookingDate  string `json:"bookingDate"`
	StartTime    string `json:"startTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(caller domain.Caller, bookingID int64) (*rescheduleBooking.Request, error) {
	date, err := types.ParseDate(r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &rescheduleBooking.Request{
		Caller:       caller,
		BookingID:    bookingID,
		TeamMemberID: r.TeamMemberID,
		Date:         date,
		StartTime:    startTime,
	}, nil
}
