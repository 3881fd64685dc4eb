package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
	"github.com/m04kA/SMC-SalonBooking/pkg/zoned"
)

const (
	stagePrecheck = "precheck"
	stageStorage  = "storage"
)

// UseCase use case переноса бронирования (редактирование и drag-and-drop в календаре)
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	windowRepo   WindowRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	windowRepo WindowRepository,
	txManager TransactionManager,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		windowRepo:   windowRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute переносит бронирование. Длительность сохраняется, само бронирование в проверке пересечений не участвует.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: user=%s, booking=%d, member=%v, date=%s, time=%s",
		req.Caller.UserID, req.BookingID, req.TeamMemberID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Переносить может только администратор
	if !req.Caller.IsAdmin() {
		uc.logger.Warn("RescheduleBooking: user=%s is not an admin", req.Caller.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}
	date := types.DateOnly(req.Date)

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3. Бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d has status %s", booking.ID, booking.Status)
			return ErrCannotReschedule
		}

		// 4. Часовой пояс салона
		shop, err := uc.catalogRepo.GetShop(txCtx, booking.ShopID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get shop id=%d: %v", booking.ShopID, err)
			return fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
		}
		loc, err := shop.Location()
		if err != nil {
			uc.logger.Error("RescheduleBooking: shop id=%d has invalid timezone %q", shop.ID, shop.Timezone)
			return fmt.Errorf("%w: invalid shop timezone: %v", ErrInternal, err)
		}

		// 5. Новый мастер должен работать в салоне и оказывать услугу
		memberID := booking.TeamMemberID
		if req.TeamMemberID != nil && *req.TeamMemberID != booking.TeamMemberID {
			if err := uc.checkTeamMember(txCtx, *req.TeamMemberID, booking); err != nil {
				return err
			}
			memberID = *req.TeamMemberID
		}

		// 6. Новые границы с той же длительностью
		end, err := req.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			uc.logger.Warn("RescheduleBooking: %s +%d min crosses midnight", req.StartTime, booking.DurationMinutes)
			return fmt.Errorf("%w: booking must end on the same day", ErrInvalidInput)
		}

		// 7. Новое время должно попадать в рабочее окно мастера
		windows, err := uc.windowRepo.List(txCtx, domain.WindowsFilter{
			ShopID:        booking.ShopID,
			TeamMemberIDs: []int64{memberID},
			StartDate:     date,
			EndDate:       date,
			OnlyAvailable: true,
		})
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get availability windows: %v", err)
			return fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
		}
		if !availability.WithinWindows(windows, memberID, date, req.StartTime, end) {
			uc.logger.Warn("RescheduleBooking: %s-%s is outside availability of member=%d on %s",
				req.StartTime, end, memberID, date.Format(domain.DateFormat))
			return ErrOutsideAvailability
		}

		// 8. Проверка пересечений без самого бронирования
		bookings, err := uc.bookingRepo.GetBlockingForDate(txCtx, booking.ShopID, []int64{memberID}, date)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		conflict := availability.HasConflict(availability.Candidate{
			TeamMemberID: memberID,
			Date:         date,
			Start:        req.StartTime,
			End:          end,
		}, bookings, &booking.ID)
		if conflict.Conflict {
			uc.metrics.IncSlotConflict(stagePrecheck)
			uc.logger.Warn("RescheduleBooking: booking id=%d conflicts with %v", booking.ID, conflict.ConflictingBookingNumbers)
			return fmt.Errorf("%w: %w", ErrSlotNotAvailable, conflict.Err())
		}

		// 9. Сохраняем новое время
		booking.TeamMemberID = memberID
		booking.BookingDate = date
		booking.StartTime = req.StartTime
		booking.EndTime = end
		booking.StartsAt = zoned.LocalToUTCIn(date, req.StartTime, loc)
		booking.EndsAt = booking.StartsAt.Add(time.Duration(booking.DurationMinutes) * time.Minute)
		booking.UpdatedAt = uc.timeProvider.Now()

		if err := uc.bookingRepo.Reschedule(txCtx, booking); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
				uc.metrics.IncSlotConflict(stageStorage)
				uc.logger.Warn("RescheduleBooking: storage rejected booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			default:
				uc.logger.Error("RescheduleBooking: failed to update booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
			}
		}

		result = booking
		return nil
	})

	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			uc.metrics.IncSlotConflict(stageStorage)
			uc.logger.Warn("RescheduleBooking: serialization failure for booking id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to member=%d, %s %s-%s",
		result.ID, result.TeamMemberID, date.Format(domain.DateFormat), result.StartTime, result.EndTime)

	return &Response{Booking: result}, nil
}

func (uc *UseCase) checkTeamMember(ctx context.Context, memberID int64, booking *domain.Booking) error {
	member, err := uc.catalogRepo.GetTeamMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrTeamMemberNotFound) {
			return ErrTeamMemberNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get member id=%d: %v", memberID, err)
		return fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}
	if member.ShopID != booking.ShopID || !member.IsActive {
		uc.logger.Warn("RescheduleBooking: member id=%d does not work in shop=%d", member.ID, booking.ShopID)
		return ErrTeamMemberNotFound
	}

	offers, err := uc.catalogRepo.MemberOffersService(ctx, member.ID, booking.ServiceID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to check member services: %v", err)
		return fmt.Errorf("%w: failed to check member services: %v", ErrInternal, err)
	}
	if !offers {
		return ErrServiceNotOffered
	}

	return nil
}
