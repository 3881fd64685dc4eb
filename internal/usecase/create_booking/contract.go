package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetBlockingForDate в транзакции блокирует строки дня мастера (FOR UPDATE)
	GetBlockingForDate(ctx context.Context, shopID int64, teamMemberIDs []int64, date time.Time) ([]*domain.Booking, error)
	GetByIdempotencyKey(ctx context.Context, clientID int64, key string) (*domain.Booking, error)
}

// CatalogRepository интерфейс справочника салона
type CatalogRepository interface {
	GetShop(ctx context.Context, id int64) (*domain.Shop, error)
	GetService(ctx context.Context, shopID, serviceID int64) (*domain.Service, error)
	GetTeamMember(ctx context.Context, id int64) (*domain.TeamMember, error)
	MemberOffersService(ctx context.Context, teamMemberID, serviceID int64) (bool, error)
	GetClientByUserID(ctx context.Context, userID string) (*domain.Client, error)
	GetClientByID(ctx context.Context, id int64) (*domain.Client, error)
}

// WindowRepository окна доступности мастеров
type WindowRepository interface {
	List(ctx context.Context, filter domain.WindowsFilter) ([]*domain.AvailabilityWindow, error)
}

// ReservationStore хранилище временных удержаний слотов
type ReservationStore interface {
	DeleteBySession(ctx context.Context, sessionID string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики бронирований
type Metrics interface {
	IncBookingCreated(role string)
	IncSlotConflict(stage string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
