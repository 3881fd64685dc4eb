package payroll_settings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// PayrollRepository интерфейс репозитория ставок и праздников
type PayrollRepository interface {
	ListRates(ctx context.Context) ([]*domain.HourlyRate, error)
	UpsertRate(ctx context.Context, rate *domain.HourlyRate) (*domain.HourlyRate, error)
	ListHolidays(ctx context.Context, from, to *time.Time, onlyActive bool) ([]*domain.PublicHoliday, error)
	CreateHoliday(ctx context.Context, h *domain.PublicHoliday) (*domain.PublicHoliday, error)
	SetHolidayActive(ctx context.Context, id int64, active bool) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
