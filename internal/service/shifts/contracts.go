package shifts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	Create(ctx context.Context, s *domain.Shift) (*domain.Shift, error)
	GetByID(ctx context.Context, id int64) (*domain.Shift, error)
	GetActiveByMember(ctx context.Context, teamMemberID int64) (*domain.Shift, error)
	Update(ctx context.Context, s *domain.Shift) error
	MarkPaid(ctx context.Context, ids []int64, at time.Time) (int64, error)
	List(ctx context.Context, filter domain.ShiftsFilter) ([]*domain.Shift, error)
}

// PayrollRepository интерфейс ставок и праздников
type PayrollRepository interface {
	ListRates(ctx context.Context) ([]*domain.HourlyRate, error)
	ListHolidays(ctx context.Context, from, to *time.Time, onlyActive bool) ([]*domain.PublicHoliday, error)
}

// CatalogRepository интерфейс справочника салона
type CatalogRepository interface {
	GetShop(ctx context.Context, id int64) (*domain.Shop, error)
	GetTeamMember(ctx context.Context, id int64) (*domain.TeamMember, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для доменных метрик
type Metrics interface {
	IncShiftCompleted()
	AddShiftsPaid(n int)
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
