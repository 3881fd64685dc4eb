package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SessionID    string    // Сессия покупателя, её удержание не блокирует слоты
	ShopID       int64     // ID салона
	ServiceID    int64     // ID услуги
	TeamMemberID *int64    // Мастер (nil - любой свободный мастер)
	Date         time.Time // Локальная дата салона (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time         // Дата, на которую запрашивались слоты
	ShopID          int64             // ID салона
	ServiceID       int64             // ID услуги
	Mode            availability.Mode // single или any
	DurationMinutes int               // Длительность услуги
	Slots           []Slot            // Список доступных слотов
}

// Slot модель временного слота
type Slot struct {
	StartTime    types.TimeString // Время начала слота (например, "10:00")
	EndTime      types.TimeString // Время окончания
	TeamMemberID int64            // Мастер, к которому будет запись
}
