package save_recurring_availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/recurrence"
)

// Request модель запроса на сохранение регулярного графика мастера
type Request struct {
	ShopID       int64
	TeamMemberID int64
	StartDate    time.Time
	EndDate      *time.Time // nil - StartDate + 12 недель
	Cadence      string     // everyWeek, everyTwoWeeks, everyMonth
	Week         recurrence.WeekTemplate
}

// Response итог сохранения: какой период перезаписан и сколько строк заменено
type Response struct {
	StartDate time.Time
	EndDate   time.Time
	Deleted   int64
	Created   int64
}
