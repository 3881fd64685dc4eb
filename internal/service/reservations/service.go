package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	reservationRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Service менеджер временных удержаний слотов
type Service struct {
	store        Store
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	windowRepo   WindowRepository
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	ttl          time.Duration
}

// NewService создает сервис удержаний. ttl <= 0 заменяется на значение по умолчанию.
func NewService(
	store Store,
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	windowRepo WindowRepository,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
	ttl time.Duration,
) *Service {
	if ttl <= 0 {
		ttl = domain.DefaultReservationTTL
	}

	return &Service{
		store:        store,
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		windowRepo:   windowRepo,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
		ttl:          ttl,
	}
}

// Reserve удерживает слот за сессией. Предыдущее удержание сессии заменяется.
func (s *Service) Reserve(ctx context.Context, req *models.ReserveRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Reserve: session=%s, member=%d, date=%s, start=%s",
		req.SessionID, req.TeamMemberID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	if strings.TrimSpace(req.SessionID) == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	date, err := types.ParseDate(req.Date)
	if err != nil {
		s.logger.Warn("Reserve: invalid date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}
	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		s.logger.Warn("Reserve: invalid start time=%s: %v", req.StartTime, err)
		return nil, fmt.Errorf("%w: invalid start time", ErrInvalidInput)
	}

	// 2. Услуга и мастер
	duration, err := s.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	end, err := start.AddMinutes(duration)
	if err != nil {
		s.logger.Warn("Reserve: slot %s + %d min exceeds the day", start, duration)
		return nil, fmt.Errorf("%w: slot exceeds the day", ErrInvalidInput)
	}

	now := s.timeProvider.Now().UTC()

	// 3. Слот должен попадать в рабочее окно мастера
	if err := s.checkWindow(ctx, req, date, start, end); err != nil {
		return nil, err
	}

	// 4. Слот не должен пересекаться с бронированиями и чужими удержаниями
	if err := s.checkFree(ctx, req, date, start, end, now); err != nil {
		return nil, err
	}

	// 5. Заменяем удержание сессии
	saved, err := s.store.Replace(ctx, &domain.TemporaryReservation{
		SessionID:    req.SessionID,
		TeamMemberID: req.TeamMemberID,
		ShopID:       req.ShopID,
		ServiceID:    req.ServiceID,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		ExpiresAt:    now.Add(s.ttl),
		CreatedAt:    now,
	})
	if err != nil {
		s.logger.Error("Reserve: failed to save reservation for session=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: Reserve - store error: %v", ErrInternal, err)
	}

	s.metrics.IncReservationCreated()
	s.logger.Info("Reserve: session=%s holds member=%d %s %s-%s until %s",
		req.SessionID, req.TeamMemberID, req.Date, start, end, saved.ExpiresAt.Format(time.RFC3339))
	return models.FromDomainReservation(saved), nil
}

// Release снимает удержание сессии. Повторный вызов не ошибка.
func (s *Service) Release(ctx context.Context, sessionID string) error {
	s.logger.Info("Release: session=%s", sessionID)

	if err := s.store.DeleteBySession(ctx, sessionID); err != nil {
		s.logger.Error("Release: failed to delete reservation for session=%s: %v", sessionID, err)
		return fmt.Errorf("%w: Release - store error: %v", ErrInternal, err)
	}
	return nil
}

// Get возвращает живое удержание сессии
func (s *Service) Get(ctx context.Context, sessionID string) (*models.ReservationResponse, error) {
	res, err := s.store.GetBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Get: failed to load reservation for session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: Get - store error: %v", ErrInternal, err)
	}

	if !res.IsLive(s.timeProvider.Now()) {
		return nil, ErrReservationNotFound
	}
	return models.FromDomainReservation(res), nil
}

// Blocking удаляет просроченные удержания и возвращает живые чужие удержания салона на дату
func (s *Service) Blocking(ctx context.Context, shopID int64, date time.Time, sessionID string) ([]*domain.TemporaryReservation, error) {
	now := s.timeProvider.Now().UTC()

	purged, err := s.store.PurgeExpired(ctx, now)
	if err != nil {
		s.logger.Error("Blocking: failed to purge expired reservations: %v", err)
		return nil, fmt.Errorf("%w: Blocking - purge error: %v", ErrInternal, err)
	}
	if purged > 0 {
		s.logger.Info("Blocking: purged %d expired reservations", purged)
	}

	all, err := s.store.ListForDate(ctx, shopID, date)
	if err != nil {
		s.logger.Error("Blocking: failed to list reservations for shop=%d date=%s: %v",
			shopID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: Blocking - store error: %v", ErrInternal, err)
	}

	return availability.BlockingReservations(all, sessionID, now), nil
}

func (s *Service) resolveDuration(ctx context.Context, req *models.ReserveRequest) (int, error) {
	service, err := s.catalogRepo.GetService(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Reserve: service=%d not found in shop=%d", req.ServiceID, req.ShopID)
			return 0, ErrServiceNotFound
		}
		s.logger.Error("Reserve: failed to load service=%d: %v", req.ServiceID, err)
		return 0, fmt.Errorf("%w: Reserve - catalog error: %v", ErrInternal, err)
	}

	member, err := s.catalogRepo.GetTeamMember(ctx, req.TeamMemberID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrTeamMemberNotFound) {
			s.logger.Warn("Reserve: team member=%d not found", req.TeamMemberID)
			return 0, ErrTeamMemberNotFound
		}
		s.logger.Error("Reserve: failed to load team member=%d: %v", req.TeamMemberID, err)
		return 0, fmt.Errorf("%w: Reserve - catalog error: %v", ErrInternal, err)
	}
	if member.ShopID != req.ShopID || !member.IsActive {
		s.logger.Warn("Reserve: team member=%d does not work in shop=%d", req.TeamMemberID, req.ShopID)
		return 0, ErrTeamMemberNotFound
	}

	offers, err := s.catalogRepo.MemberOffersService(ctx, req.TeamMemberID, req.ServiceID)
	if err != nil {
		s.logger.Error("Reserve: failed to check member services: %v", err)
		return 0, fmt.Errorf("%w: Reserve - catalog error: %v", ErrInternal, err)
	}
	if !offers {
		return 0, ErrServiceNotOffered
	}

	duration := service.DurationMinutes
	if req.DurationMinutes > 0 {
		duration = req.DurationMinutes
	}
	if duration < domain.MinServiceDurationMinutes || duration > domain.MaxServiceDurationMinutes {
		return 0, fmt.Errorf("%w: duration %d out of range", ErrInvalidInput, duration)
	}
	return duration, nil
}

func (s *Service) checkWindow(ctx context.Context, req *models.ReserveRequest, date time.Time, start, end types.TimeString) error {
	windows, err := s.windowRepo.List(ctx, domain.WindowsFilter{
		ShopID:        req.ShopID,
		TeamMemberIDs: []int64{req.TeamMemberID},
		StartDate:     date,
		EndDate:       date,
		OnlyAvailable: true,
	})
	if err != nil {
		s.logger.Error("Reserve: failed to load availability windows: %v", err)
		return fmt.Errorf("%w: Reserve - window repository error: %v", ErrInternal, err)
	}

	if !availability.WithinWindows(windows, req.TeamMemberID, date, start, end) {
		s.logger.Warn("Reserve: %s-%s is outside availability of member=%d", start, end, req.TeamMemberID)
		return ErrOutsideAvailability
	}
	return nil
}

func (s *Service) checkFree(ctx context.Context, req *models.ReserveRequest, date time.Time, start, end types.TimeString, now time.Time) error {
	bookings, err := s.bookingRepo.GetBlockingForDate(ctx, req.ShopID, []int64{req.TeamMemberID}, date)
	if err != nil {
		s.logger.Error("Reserve: failed to load bookings: %v", err)
		return fmt.Errorf("%w: Reserve - booking repository error: %v", ErrInternal, err)
	}

	candidate := availability.Candidate{TeamMemberID: req.TeamMemberID, Date: date, Start: start, End: end}
	if result := availability.HasConflict(candidate, bookings, nil); result.Conflict {
		s.metrics.IncSlotConflict("reserve")
		s.logger.Warn("Reserve: slot conflicts with bookings %v", result.ConflictingBookingNumbers)
		return fmt.Errorf("%w: %w", ErrSlotNotAvailable, result.Err())
	}

	held, err := s.store.ListForDate(ctx, req.ShopID, date)
	if err != nil {
		s.logger.Error("Reserve: failed to load reservations: %v", err)
		return fmt.Errorf("%w: Reserve - store error: %v", ErrInternal, err)
	}

	for _, r := range availability.BlockingReservations(held, req.SessionID, now) {
		if r.TeamMemberID != req.TeamMemberID {
			continue
		}
		if availability.Overlaps(start.Minutes(), end.Minutes(), r.StartTime.Minutes(), r.EndTime.Minutes()) {
			s.metrics.IncSlotConflict("reserve")
			s.logger.Warn("Reserve: slot is held by another session until %s", r.ExpiresAt.Format(time.RFC3339))
			return ErrSlotNotAvailable
		}
	}

	return nil
}
