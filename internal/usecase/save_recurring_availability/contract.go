package save_recurring_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// WindowRepository интерфейс репозитория окон доступности
type WindowRepository interface {
	// DeleteRange удаляет окна мастера в салоне за [start, end] включительно
	DeleteRange(ctx context.Context, teamMemberID, shopID int64, start, end time.Time) (int64, error)
	CreateBatch(ctx context.Context, windows []*domain.AvailabilityWindow) (int64, error)
}

// TeamMemberRepository интерфейс справочника мастеров
type TeamMemberRepository interface {
	GetTeamMember(ctx context.Context, id int64) (*domain.TeamMember, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
