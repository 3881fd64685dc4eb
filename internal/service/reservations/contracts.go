package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Store хранилище временных удержаний (Postgres или Redis)
type Store interface {
	Replace(ctx context.Context, res *domain.TemporaryReservation) (*domain.TemporaryReservation, error)
	GetBySession(ctx context.Context, sessionID string) (*domain.TemporaryReservation, error)
	DeleteBySession(ctx context.Context, sessionID string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
	ListForDate(ctx context.Context, shopID int64, date time.Time) ([]*domain.TemporaryReservation, error)
}

// BookingRepository интерфейс чтения занятых бронирований
type BookingRepository interface {
	GetBlockingForDate(ctx context.Context, shopID int64, teamMemberIDs []int64, date time.Time) ([]*domain.Booking, error)
}

// WindowRepository окна доступности мастеров
type WindowRepository interface {
	List(ctx context.Context, filter domain.WindowsFilter) ([]*domain.AvailabilityWindow, error)
}

// CatalogRepository интерфейс справочника салона
type CatalogRepository interface {
	GetService(ctx context.Context, shopID, serviceID int64) (*domain.Service, error)
	GetTeamMember(ctx context.Context, id int64) (*domain.TeamMember, error)
	MemberOffersService(ctx context.Context, teamMemberID, serviceID int64) (bool, error)
}

// Metrics интерфейс для доменных метрик
type Metrics interface {
	IncReservationCreated()
	IncSlotConflict(stage string)
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
