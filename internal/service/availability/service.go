package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	windowRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/availability"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Service сервис администрирования окон доступности
type Service struct {
	windowRepo WindowRepository
	memberRepo TeamMemberRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса
func NewService(windowRepo WindowRepository, memberRepo TeamMemberRepository, logger Logger) *Service {
	return &Service{
		windowRepo: windowRepo,
		memberRepo: memberRepo,
		logger:     logger,
	}
}

// CreateWindow создает окно доступности мастера на одну дату
func (s *Service) CreateWindow(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("CreateWindow: member=%d, shop=%d, date=%s %s-%s",
		req.TeamMemberID, req.ShopID, req.Date, req.StartTime, req.EndTime)

	date, err := types.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}
	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time", ErrInvalidInput)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time", ErrInvalidInput)
	}
	if !start.IsBefore(end) {
		s.logger.Warn("CreateWindow: start %s is not before end %s", start, end)
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	if err := s.checkMember(ctx, req.TeamMemberID, req.ShopID); err != nil {
		return nil, err
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	created, err := s.windowRepo.Create(ctx, &domain.AvailabilityWindow{
		TeamMemberID: req.TeamMemberID,
		ShopID:       req.ShopID,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		IsAvailable:  isAvailable,
	})
	if err != nil {
		s.logger.Error("CreateWindow: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateWindow: created window id=%d", created.ID)
	return models.FromDomainWindow(created), nil
}

// ListWindows возвращает окна салона за период, опционально по одному мастеру
func (s *Service) ListWindows(ctx context.Context, req *models.ListWindowsRequest) (*models.WindowListResponse, error) {
	start, err := types.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date", ErrInvalidInput)
	}
	end, err := types.ParseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date", ErrInvalidInput)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	filter := domain.WindowsFilter{ShopID: req.ShopID, StartDate: start, EndDate: end}
	if req.TeamMemberID != nil {
		filter.TeamMemberIDs = []int64{*req.TeamMemberID}
	}

	list, err := s.windowRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListWindows: repository error for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWindowList(list), nil
}

// DeleteWindow удаляет окно салона
func (s *Service) DeleteWindow(ctx context.Context, shopID, id int64) error {
	s.logger.Info("DeleteWindow: shop=%d, window=%d", shopID, id)

	w, err := s.windowRepo.GetByID(ctx, id)
	if err != nil {
		return s.mapNotFound("DeleteWindow", id, err)
	}
	if w.ShopID != shopID {
		s.logger.Warn("DeleteWindow: window=%d belongs to shop=%d", id, w.ShopID)
		return ErrWindowNotFound
	}

	if err := s.windowRepo.Delete(ctx, id); err != nil {
		return s.mapNotFound("DeleteWindow", id, err)
	}
	return nil
}

func (s *Service) checkMember(ctx context.Context, memberID, shopID int64) error {
	member, err := s.memberRepo.GetTeamMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrTeamMemberNotFound) {
			return ErrTeamMemberNotFound
		}
		s.logger.Error("checkMember: repository error for member=%d: %v", memberID, err)
		return fmt.Errorf("%w: checkMember - repository error: %v", ErrInternal, err)
	}
	if member.ShopID != shopID {
		s.logger.Warn("checkMember: member=%d does not work in shop=%d", memberID, shopID)
		return ErrTeamMemberNotFound
	}
	return nil
}

func (s *Service) mapNotFound(op string, id int64, err error) error {
	if errors.Is(err, windowRepo.ErrWindowNotFound) {
		return ErrWindowNotFound
	}
	s.logger.Error("%s: repository error for window=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
