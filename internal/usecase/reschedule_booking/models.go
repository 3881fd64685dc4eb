package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	Caller       domain.Caller
	BookingID    int64
	TeamMemberID *int64           // nil - мастер не меняется
	Date         time.Time        // Новая локальная дата салона
	StartTime    types.TimeString // Новое локальное время начала
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	Booking *domain.Booking
}
