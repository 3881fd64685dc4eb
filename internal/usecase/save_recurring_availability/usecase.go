package save_recurring_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/recurrence"
)

// UseCase use case сохранения регулярного графика мастера
type UseCase struct {
	windowRepo WindowRepository
	memberRepo TeamMemberRepository
	txManager  TransactionManager
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	windowRepo WindowRepository,
	memberRepo TeamMemberRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		windowRepo: windowRepo,
		memberRepo: memberRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Execute разворачивает шаблон в окна и заменяет ими окна мастера за тот же период.
// Повторное сохранение с теми же параметрами дает тот же набор окон.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SaveRecurringAvailability: shop=%d, member=%d, start=%s, cadence=%s, days=%d",
		req.ShopID, req.TeamMemberID, req.StartDate.Format(domain.DateFormat), req.Cadence, req.Week.EnabledDays())

	// 1. Валидация входных данных
	pattern, err := buildPattern(req)
	if err != nil {
		uc.logger.Warn("SaveRecurringAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Мастер должен работать в салоне
	member, err := uc.memberRepo.GetTeamMember(ctx, req.TeamMemberID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrTeamMemberNotFound) {
			return nil, ErrTeamMemberNotFound
		}
		uc.logger.Error("SaveRecurringAvailability: failed to get member id=%d: %v", req.TeamMemberID, err)
		return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}
	if member.ShopID != req.ShopID {
		uc.logger.Warn("SaveRecurringAvailability: member id=%d does not work in shop=%d", member.ID, req.ShopID)
		return nil, ErrTeamMemberNotFound
	}

	// 3. Разворачиваем шаблон
	occurrences, err := recurrence.Expand(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	windows := make([]*domain.AvailabilityWindow, 0, len(occurrences))
	for _, o := range occurrences {
		windows = append(windows, &domain.AvailabilityWindow{
			TeamMemberID: req.TeamMemberID,
			ShopID:       req.ShopID,
			Date:         o.Date,
			StartTime:    o.Start,
			EndTime:      o.End,
			IsAvailable:  true,
		})
	}

	resp := &Response{
		StartDate: pattern.StartDate,
		EndDate:   pattern.ResolvedEnd(),
	}

	// 4. Удаляем старые окна периода и вставляем новые одной транзакцией
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		deleted, err := uc.windowRepo.DeleteRange(txCtx, req.TeamMemberID, req.ShopID, resp.StartDate, resp.EndDate)
		if err != nil {
			uc.logger.Error("SaveRecurringAvailability: failed to delete windows: %v", err)
			return fmt.Errorf("%w: failed to delete windows: %v", ErrInternal, err)
		}

		created, err := uc.windowRepo.CreateBatch(txCtx, windows)
		if err != nil {
			uc.logger.Error("SaveRecurringAvailability: failed to insert windows: %v", err)
			return fmt.Errorf("%w: failed to insert windows: %v", ErrInternal, err)
		}

		resp.Deleted = deleted
		resp.Created = created
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInternal) {
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("SaveRecurringAvailability: member=%d, %s..%s replaced %d windows with %d",
		req.TeamMemberID, resp.StartDate.Format(domain.DateFormat), resp.EndDate.Format(domain.DateFormat),
		resp.Deleted, resp.Created)

	return resp, nil
}
