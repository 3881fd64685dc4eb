package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Caller         domain.Caller    // Пользователь запроса
	SessionID      string           // Сессия покупателя, удержание которой снимается после записи
	ShopID         int64            // ID салона
	ServiceID      int64            // ID услуги
	TeamMemberID   int64            // ID мастера
	ClientID       *int64           // ID клиента (только для администратора)
	Date           time.Time        // Локальная дата салона (без времени)
	StartTime      types.TimeString // Локальное время начала (например, "10:00")
	Notes          *string          // Заметки (опционально)
	IdempotencyKey *string          // Ключ идемпотентности клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking  *domain.Booking
	Replayed bool // true - бронирование создано ранее с тем же ключом идемпотентности
}
