package reservations

import "github.com/m04kA/SMC-SalonBooking/internal/service/reservations/models"

// ReserveRequest HTTP request model
type ReserveRequest struct {
	ShopID       int64  `json:"shopId"`
	TeamMemberID int64  `json:"teamMemberId"`
	ServiceID    int64  `json:"serviceId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ReserveRequest) ToServiceRequest(sessionID string) *models.ReserveRequest {
	return &models.ReserveRequest{
		SessionID:    sessionID,
		ShopID:       r.ShopID,
		TeamMemberID: r.TeamMemberID,
		ServiceID:    r.ServiceID,
		Date:         r.Date,
		StartTime:    r.StartTime,
	}
}
