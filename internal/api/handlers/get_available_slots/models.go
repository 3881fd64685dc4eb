package get_available_slots

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	ShopID          int64          `json:"shopId"`
	ServiceID       int64          `json:"serviceId"`
	Mode            string         `json:"mode"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	TeamMemberID int64  `json:"teamMemberId"`
}

// ToUseCaseRequest формирует запрос к use case
func ToUseCaseRequest(sessionID string, shopID, serviceID int64, teamMemberID *int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		SessionID:    sessionID,
		ShopID:       shopID,
		ServiceID:    serviceID,
		TeamMemberID: teamMemberID,
		Date:         date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ShopID:          resp.ShopID,
		ServiceID:       resp.ServiceID,
		Mode:            string(resp.Mode),
		DurationMinutes: resp.DurationMinutes,
		Slots:           make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime:    s.StartTime.String(),
			EndTime:      s.EndTime.String(),
			TeamMemberID: s.TeamMemberID,
		})
	}

	return out
}
