package availability

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// WindowRepository интерфейс репозитория окон доступности
type WindowRepository interface {
	Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityWindow, error)
	List(ctx context.Context, filter domain.WindowsFilter) ([]*domain.AvailabilityWindow, error)
	Delete(ctx context.Context, id int64) error
}

// TeamMemberRepository интерфейс поиска мастера
type TeamMemberRepository interface {
	GetTeamMember(ctx context.Context, id int64) (*domain.TeamMember, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
