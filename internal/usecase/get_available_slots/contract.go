package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CatalogRepository интерфейс справочника салона
type CatalogRepository interface {
	GetShop(ctx context.Context, id int64) (*domain.Shop, error)
	GetService(ctx context.Context, shopID, serviceID int64) (*domain.Service, error)
	GetTeamMember(ctx context.Context, id int64) (*domain.TeamMember, error)
	ListMembersForService(ctx context.Context, shopID, serviceID int64) ([]*domain.TeamMember, error)
	MemberOffersService(ctx context.Context, teamMemberID, serviceID int64) (bool, error)
}

// WindowRepository интерфейс репозитория окон доступности
type WindowRepository interface {
	List(ctx context.Context, filter domain.WindowsFilter) ([]*domain.AvailabilityWindow, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetBlockingForDate получает confirmed и completed бронирования мастеров на дату
	GetBlockingForDate(ctx context.Context, shopID int64, teamMemberIDs []int64, date time.Time) ([]*domain.Booking, error)
}

// ReservationProvider источник живых чужих удержаний (с ленивой очисткой просроченных)
type ReservationProvider interface {
	Blocking(ctx context.Context, shopID int64, date time.Time, sessionID string) ([]*domain.TemporaryReservation, error)
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
