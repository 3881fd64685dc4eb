package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	clientRepo   ClientRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		clientRepo:   clientRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент видит только своё бронирование, администратор любое.
func (s *Service) GetByID(ctx context.Context, id int64, caller domain.Caller) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%s", id, caller.UserID)

	details, err := s.bookingRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(ctx, &details.Booking, caller); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%d", caller.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainDetails(details), nil
}

// GetClientBookings получает историю бронирований клиента.
// Опционально фильтрует по статусу.
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for user=%s, status=%v", req.Caller.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for user=%s", *req.Status, req.Caller.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	client, err := s.resolveClient(ctx, req.Caller.UserID)
	if err != nil {
		return nil, err
	}

	list, err := s.bookingRepo.ListByClient(ctx, client.ID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", client.ID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(list), client.ID)
	return models.FromDomainDetailsList(list), nil
}

// GetShopBookings возвращает календарь бронирований салона с фильтрацией.
// Доступно только администратору.
func (s *Service) GetShopBookings(ctx context.Context, req *models.GetShopBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetShopBookings: fetching bookings for shop=%d, user=%s", req.ShopID, req.Caller.UserID)
	if req.TeamMemberID != nil {
		logMsg += fmt.Sprintf(", member=%d", *req.TeamMemberID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if !req.Caller.IsAdmin() {
		s.logger.Warn("GetShopBookings: user=%s is not an admin", req.Caller.UserID)
		return nil, ErrAccessDenied
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("GetShopBookings: end date before start date for shop=%d", req.ShopID)
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetShopBookings: invalid filter for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	list, err := s.bookingRepo.ListByShop(ctx, filter)
	if err != nil {
		s.logger.Error("GetShopBookings: repository error for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: GetShopBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetShopBookings: successfully fetched %d bookings for shop=%d", len(list), req.ShopID)
	return models.FromDomainDetailsList(list), nil
}

// Cancel отменяет бронирование.
// Клиент может отменить только своё бронирование, администратор любое.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%s", bookingID, req.Caller.UserID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Блокируем строку бронирования
		booking, err := s.loadBooking(ctx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		// 2. Проверяем права доступа
		if err := s.checkAccess(ctx, booking, req.Caller); err != nil {
			s.logger.Warn("Cancel: access denied for user=%s to booking id=%d", req.Caller.UserID, bookingID)
			return err
		}

		// 3. Отменить можно только подтверждённое бронирование
		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		// 4. Сохраняем отмену
		if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason, s.timeProvider.Now().UTC()); err != nil {
			return s.mapWriteError("Cancel", bookingID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// UpdateStatus переводит бронирование в completed, no_show или cancelled.
// Доступно только администратору.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%s",
		bookingID, req.Status, req.Caller.UserID)

	if !req.Caller.IsAdmin() {
		s.logger.Warn("UpdateStatus: user=%s is not an admin", req.Caller.UserID)
		return ErrAccessDenied
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.loadBooking(ctx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		if !booking.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
				booking.Status, newStatus, bookingID)
			return ErrInvalidTransition
		}

		now := s.timeProvider.Now().UTC()
		if newStatus == domain.StatusCancelled {
			err = s.bookingRepo.Cancel(ctx, bookingID, nil, now)
		} else {
			err = s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus, now)
		}
		if err != nil {
			return s.mapWriteError("UpdateStatus", bookingID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) loadBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) mapWriteError(op string, id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found during update", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// checkAccess пропускает администратора и владельца бронирования
func (s *Service) checkAccess(ctx context.Context, booking *domain.Booking, caller domain.Caller) error {
	if caller.IsAdmin() {
		return nil
	}

	client, err := s.resolveClient(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return ErrAccessDenied
		}
		return err
	}

	if client.ID != booking.ClientID {
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) resolveClient(ctx context.Context, userID string) (*domain.Client, error) {
	client, err := s.clientRepo.GetClientByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrClientNotFound) {
			s.logger.Warn("resolveClient: no client for user=%s", userID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("resolveClient: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: resolveClient - repository error: %v", ErrInternal, err)
	}
	return client, nil
}
