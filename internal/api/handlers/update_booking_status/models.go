package update_booking_status

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // completed | no_show | cancelled
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(caller domain.Caller) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		Caller: caller,
		Status: r.Status,
	}
}
