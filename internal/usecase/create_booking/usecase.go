package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
	"github.com/m04kA/SMC-SalonBooking/pkg/zoned"
)

const (
	bookingNumberPrefix = "BK-"
	bookingNumberLength = 8

	stagePrecheck = "precheck"
	stageStorage  = "storage"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	windowRepo   WindowRepository
	reservations ReservationStore
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
	reservations ReservationStore,
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
		reservations: reservations,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка идут в сериализуемой транзакции, EXCLUDE ограничение в БД
// отсекает гонки, которые проверка не увидела.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, role=%s, shop=%d, service=%d, member=%d, date=%s, time=%s",
		req.Caller.UserID, req.Caller.Role, req.ShopID, req.ServiceID, req.TeamMemberID,
		req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	date := types.DateOnly(req.Date)

	// 2. Получаем салон и его часовой пояс
	shop, err := uc.catalogRepo.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrShopNotFound) {
			uc.logger.Warn("CreateBooking: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("CreateBooking: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	loc, err := shop.Location()
	if err != nil {
		uc.logger.Error("CreateBooking: shop id=%d has invalid timezone %q", shop.ID, shop.Timezone)
		return nil, fmt.Errorf("%w: invalid shop timezone: %v", ErrInternal, err)
	}

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetService(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем мастера
	if err := uc.checkTeamMember(ctx, req); err != nil {
		return nil, err
	}

	// 5. Определяем клиента
	client, err := uc.resolveClient(ctx, req)
	if err != nil {
		return nil, err
	}

	// 6. Повтор запроса с тем же ключом возвращает уже созданное бронирование
	if req.IdempotencyKey != nil {
		existing, err := uc.findByIdempotencyKey(ctx, client.ID, *req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			uc.logger.Info("CreateBooking: replay of idempotency key for client=%d, booking id=%d", client.ID, existing.ID)
			return &Response{Booking: existing, Replayed: true}, nil
		}
	}

	// 7. Границы бронирования в локальном времени и в UTC
	end, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: booking %s +%d min crosses midnight", req.StartTime, service.DurationMinutes)
		return nil, fmt.Errorf("%w: booking must end on the same day", ErrInvalidInput)
	}

	startsAt := zoned.LocalToUTCIn(date, req.StartTime, loc)
	endsAt := startsAt.Add(time.Duration(service.DurationMinutes) * time.Minute)

	now := uc.timeProvider.Now()
	if startsAt.Before(now) {
		uc.logger.Warn("CreateBooking: start %s is in the past (now %s)", startsAt.Format(time.RFC3339), now.UTC().Format(time.RFC3339))
		return nil, ErrBookingInPast
	}

	booking := &domain.Booking{
		BookingNumber:   newBookingNumber(),
		ShopID:          req.ShopID,
		TeamMemberID:    req.TeamMemberID,
		ServiceID:       req.ServiceID,
		ClientID:        client.ID,
		BookingDate:     date,
		StartTime:       req.StartTime,
		EndTime:         end,
		StartsAt:        startsAt,
		EndsAt:          endsAt,
		DurationMinutes: service.DurationMinutes,
		Price:           service.Price,
		Status:          domain.StatusConfirmed,
		Notes:           req.Notes,
		IdempotencyKey:  trimmedKey(req.IdempotencyKey),
	}

	var (
		result   *domain.Booking
		replayed bool
	)

	// 8. Проверка пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Время должно попадать в рабочее окно мастера
		windows, err := uc.windowRepo.List(txCtx, domain.WindowsFilter{
			ShopID:        req.ShopID,
			TeamMemberIDs: []int64{req.TeamMemberID},
			StartDate:     date,
			EndDate:       date,
			OnlyAvailable: true,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get availability windows: %v", err)
			return fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
		}
		if !availability.WithinWindows(windows, req.TeamMemberID, date, req.StartTime, end) {
			uc.logger.Warn("CreateBooking: %s-%s is outside availability of member=%d on %s",
				req.StartTime, end, req.TeamMemberID, date.Format(domain.DateFormat))
			return ErrOutsideAvailability
		}

		// 8.2. Бронирования мастера на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetBlockingForDate(txCtx, req.ShopID, []int64{req.TeamMemberID}, date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 8.3. Проверка пересечений
		conflict := availability.HasConflict(availability.Candidate{
			TeamMemberID: req.TeamMemberID,
			Date:         date,
			Start:        req.StartTime,
			End:          end,
		}, bookings, nil)
		if conflict.Conflict {
			uc.metrics.IncSlotConflict(stagePrecheck)
			uc.logger.Warn("CreateBooking: slot %s-%s of member=%d conflicts with %v",
				req.StartTime, end, req.TeamMemberID, conflict.ConflictingBookingNumbers)
			return fmt.Errorf("%w: %w", ErrSlotNotAvailable, conflict.Err())
		}

		// 8.4. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err == nil {
			result = created
			return nil
		}

		switch {
		case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
			uc.metrics.IncSlotConflict(stageStorage)
			uc.logger.Warn("CreateBooking: storage rejected overlapping booking for member=%d: %v", req.TeamMemberID, err)
			return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		case errors.Is(err, bookingRepo.ErrDuplicateIdempotencyKey):
			// Параллельный запрос с тем же ключом успел раньше
			replayed = true
			return nil
		default:
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	})

	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			uc.metrics.IncSlotConflict(stageStorage)
			uc.logger.Warn("CreateBooking: serialization failure on commit for member=%d: %v", req.TeamMemberID, err)
			return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
		if !errors.Is(err, ErrSlotNotAvailable) && !errors.Is(err, ErrOutsideAvailability) && !errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	if replayed {
		existing, err := uc.findByIdempotencyKey(ctx, client.ID, *booking.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			uc.logger.Error("CreateBooking: duplicate idempotency key for client=%d but no booking found", client.ID)
			return nil, fmt.Errorf("%w: duplicate idempotency key without booking", ErrInternal)
		}
		uc.logger.Info("CreateBooking: concurrent replay for client=%d, booking id=%d", client.ID, existing.ID)
		return &Response{Booking: existing, Replayed: true}, nil
	}

	// 9. Снимаем удержание сессии, ошибка не отменяет созданное бронирование
	if req.SessionID != "" {
		if err := uc.reservations.DeleteBySession(ctx, req.SessionID); err != nil {
			uc.logger.Warn("CreateBooking: failed to release reservation of session=%s: %v", req.SessionID, err)
		}
	}

	uc.metrics.IncBookingCreated(string(req.Caller.Role))
	uc.logger.Info("CreateBooking: successfully created booking id=%d, number=%s", result.ID, result.BookingNumber)

	return &Response{Booking: result}, nil
}

// checkTeamMember проверяет, что мастер работает в салоне и оказывает услугу
func (uc *UseCase) checkTeamMember(ctx context.Context, req *Request) error {
	member, err := uc.catalogRepo.GetTeamMember(ctx, req.TeamMemberID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrTeamMemberNotFound) {
			uc.logger.Warn("CreateBooking: member id=%d not found", req.TeamMemberID)
			return ErrTeamMemberNotFound
		}
		uc.logger.Error("CreateBooking: failed to get member id=%d: %v", req.TeamMemberID, err)
		return fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}
	if member.ShopID != req.ShopID || !member.IsActive {
		uc.logger.Warn("CreateBooking: member id=%d does not work in shop=%d", member.ID, req.ShopID)
		return ErrTeamMemberNotFound
	}

	offers, err := uc.catalogRepo.MemberOffersService(ctx, member.ID, req.ServiceID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check member services: %v", err)
		return fmt.Errorf("%w: failed to check member services: %v", ErrInternal, err)
	}
	if !offers {
		uc.logger.Warn("CreateBooking: member id=%d does not offer service=%d", member.ID, req.ServiceID)
		return ErrServiceNotOffered
	}

	return nil
}

// resolveClient клиент записывает себя, администратор указывает клиента явно
func (uc *UseCase) resolveClient(ctx context.Context, req *Request) (*domain.Client, error) {
	var (
		client *domain.Client
		err    error
	)

	switch {
	case req.Caller.IsAdmin():
		if req.ClientID == nil {
			return nil, fmt.Errorf("%w: clientID is required for admin bookings", ErrInvalidInput)
		}
		client, err = uc.catalogRepo.GetClientByID(ctx, *req.ClientID)
	case req.ClientID != nil:
		uc.logger.Warn("CreateBooking: client user=%s tried to book for client=%d", req.Caller.UserID, *req.ClientID)
		return nil, ErrAccessDenied
	default:
		client, err = uc.catalogRepo.GetClientByUserID(ctx, req.Caller.UserID)
	}

	if err != nil {
		if errors.Is(err, catalogRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateBooking: client not found for user=%s", req.Caller.UserID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get client: %v", err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	return client, nil
}

// findByIdempotencyKey возвращает nil, если бронирования с ключом нет
func (uc *UseCase) findByIdempotencyKey(ctx context.Context, clientID int64, key string) (*domain.Booking, error) {
	existing, err := uc.bookingRepo.GetByIdempotencyKey(ctx, clientID, strings.TrimSpace(key))
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, nil
		}
		uc.logger.Error("CreateBooking: failed to look up idempotency key: %v", err)
		return nil, fmt.Errorf("%w: failed to look up idempotency key: %v", ErrInternal, err)
	}
	return existing, nil
}

// newBookingNumber номер бронирования вида BK-1A2B3C4D
func newBookingNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return bookingNumberPrefix + strings.ToUpper(id[:bookingNumberLength])
}

func trimmedKey(key *string) *string {
	if key == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*key)
	return &trimmed
}
