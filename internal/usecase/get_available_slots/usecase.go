package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
	"github.com/m04kA/SMC-SalonBooking/pkg/zoned"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	catalogRepo        CatalogRepository
	windowRepo         WindowRepository
	bookingRepo        BookingRepository
	reservations       ReservationProvider
	timeProvider       TimeProvider
	logger             Logger
	granularityMinutes int
}

// NewUseCase создает новый экземпляр use case. granularityMinutes <= 0 - шаг по умолчанию.
func NewUseCase(
	catalogRepo CatalogRepository,
	windowRepo WindowRepository,
	bookingRepo BookingRepository,
	reservations ReservationProvider,
	timeProvider TimeProvider,
	logger Logger,
	granularityMinutes int,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	if granularityMinutes <= 0 {
		granularityMinutes = domain.DefaultSlotGranularityMinutes
	}

	return &UseCase{
		catalogRepo:        catalogRepo,
		windowRepo:         windowRepo,
		bookingRepo:        bookingRepo,
		reservations:       reservations,
		timeProvider:       timeProvider,
		logger:             logger,
		granularityMinutes: granularityMinutes,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: session=%s, shop=%d, service=%d, member=%v, date=%s",
		req.SessionID, req.ShopID, req.ServiceID, req.TeamMemberID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}
	date := types.DateOnly(req.Date)

	// 2. Получаем салон и его часовой пояс
	shop, err := uc.catalogRepo.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrShopNotFound) {
			uc.logger.Warn("GetAvailableSlots: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	loc, err := shop.Location()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: shop id=%d has invalid timezone %q", shop.ID, shop.Timezone)
		return nil, fmt.Errorf("%w: invalid shop timezone: %v", ErrInternal, err)
	}

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetService(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	response := &Response{
		Date:            date,
		ShopID:          req.ShopID,
		ServiceID:       req.ServiceID,
		Mode:            availability.ModeAny,
		DurationMinutes: service.DurationMinutes,
		Slots:           []Slot{},
	}
	if req.TeamMemberID != nil {
		response.Mode = availability.ModeSingle
	}

	// 4. Прошедшие даты салона не показываем
	now := uc.timeProvider.Now()
	today, nowClock := zoned.UTCToLocal(now, loc)
	if date.Before(today) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past for shop=%d", date.Format(domain.DateFormat), shop.ID)
		return response, nil
	}

	// 5. Определяем мастеров
	memberIDs, err := uc.resolveMembers(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(memberIDs) == 0 {
		uc.logger.Info("GetAvailableSlots: no team members offer service=%d", req.ServiceID)
		return response, nil
	}

	// 6. Окна доступности на дату
	windows, err := uc.windowRepo.List(ctx, domain.WindowsFilter{
		ShopID:        req.ShopID,
		TeamMemberIDs: memberIDs,
		StartDate:     date,
		EndDate:       date,
		OnlyAvailable: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}
	if len(windows) == 0 {
		return response, nil
	}

	// 7. Занятые бронирования мастеров
	bookings, err := uc.bookingRepo.GetBlockingForDate(ctx, req.ShopID, memberIDs, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Живые удержания других сессий (просроченные удаляются)
	reservations, err := uc.reservations.Blocking(ctx, req.ShopID, date, req.SessionID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 9. Генерация слотов
	generated := availability.GenerateSlots(availability.Input{
		Date:               date,
		DurationMinutes:    service.DurationMinutes,
		Windows:            windows,
		Bookings:           bookings,
		Reservations:       reservations,
		GranularityMinutes: uc.granularityMinutes,
		Mode:               response.Mode,
	})

	// 10. Для сегодняшней даты отбрасываем уже начавшиеся слоты
	isToday := types.SameDate(date, today)
	for _, s := range generated {
		if isToday && s.Time.Minutes() < nowClock.Minutes() {
			continue
		}
		response.Slots = append(response.Slots, Slot{
			StartTime:    s.Time,
			EndTime:      s.EndTime,
			TeamMemberID: s.TeamMemberID,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for shop=%d, service=%d on %s (windows=%d, bookings=%d, holds=%d)",
		len(response.Slots), req.ShopID, req.ServiceID, date.Format(domain.DateFormat),
		len(windows), len(bookings), len(reservations))

	return response, nil
}

// resolveMembers возвращает выбранного мастера или всех мастеров салона, оказывающих услугу
func (uc *UseCase) resolveMembers(ctx context.Context, req *Request) ([]int64, error) {
	if req.TeamMemberID == nil {
		members, err := uc.catalogRepo.ListMembersForService(ctx, req.ShopID, req.ServiceID)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list members: %v", err)
			return nil, fmt.Errorf("%w: failed to list members: %v", ErrInternal, err)
		}

		ids := make([]int64, 0, len(members))
		for _, m := range members {
			ids = append(ids, m.ID)
		}
		return ids, nil
	}

	member, err := uc.catalogRepo.GetTeamMember(ctx, *req.TeamMemberID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrTeamMemberNotFound) {
			return nil, ErrTeamMemberNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get member id=%d: %v", *req.TeamMemberID, err)
		return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}
	if member.ShopID != req.ShopID || !member.IsActive {
		uc.logger.Warn("GetAvailableSlots: member id=%d does not work in shop=%d", member.ID, req.ShopID)
		return nil, ErrTeamMemberNotFound
	}

	offers, err := uc.catalogRepo.MemberOffersService(ctx, member.ID, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check member services: %v", err)
		return nil, fmt.Errorf("%w: failed to check member services: %v", ErrInternal, err)
	}
	if !offers {
		return nil, ErrServiceNotOffered
	}

	return []int64{member.ID}, nil
}
