package shifts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	shiftRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/shift"
	"github.com/m04kA/SMC-SalonBooking/internal/payroll"
	"github.com/m04kA/SMC-SalonBooking/internal/service/shifts/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
	"github.com/m04kA/SMC-SalonBooking/pkg/zoned"
)

// Service сервис учета смен и расчета оплаты
type Service struct {
	shiftRepo    ShiftRepository
	payrollRepo  PayrollRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса смен
func NewService(
	shiftRepo ShiftRepository,
	payrollRepo PayrollRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		shiftRepo:    shiftRepo,
		payrollRepo:  payrollRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ClockIn открывает смену мастера. Дата смены - локальная дата салона.
func (s *Service) ClockIn(ctx context.Context, req *models.ClockInRequest) (*models.ShiftResponse, error) {
	s.logger.Info("ClockIn: member=%d, shop=%d", req.TeamMemberID, req.ShopID)

	member, err := s.catalogRepo.GetTeamMember(ctx, req.TeamMemberID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrTeamMemberNotFound) {
			return nil, ErrTeamMemberNotFound
		}
		s.logger.Error("ClockIn: failed to load member=%d: %v", req.TeamMemberID, err)
		return nil, fmt.Errorf("%w: ClockIn - catalog error: %v", ErrInternal, err)
	}
	if member.ShopID != req.ShopID {
		s.logger.Warn("ClockIn: member=%d does not work in shop=%d", req.TeamMemberID, req.ShopID)
		return nil, ErrTeamMemberNotFound
	}

	now := s.timeProvider.Now().UTC()
	date, err := s.localDate(ctx, req.ShopID, now)
	if err != nil {
		return nil, err
	}

	created, err := s.shiftRepo.Create(ctx, &domain.Shift{
		TeamMemberID: req.TeamMemberID,
		ShopID:       req.ShopID,
		Date:         date,
		ShiftStart:   now,
		Breaks:       []domain.Break{},
		Status:       domain.ShiftActive,
	})
	if err != nil {
		if errors.Is(err, shiftRepo.ErrActiveShiftExists) {
			s.logger.Warn("ClockIn: member=%d already has an active shift", req.TeamMemberID)
			return nil, ErrShiftAlreadyActive
		}
		s.logger.Error("ClockIn: repository error for member=%d: %v", req.TeamMemberID, err)
		return nil, fmt.Errorf("%w: ClockIn - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ClockIn: opened shift id=%d for member=%d", created.ID, req.TeamMemberID)
	return s.withCalculation(ctx, created, now)
}

// StartBreak начинает перерыв в открытой смене
func (s *Service) StartBreak(ctx context.Context, teamMemberID int64) (*models.ShiftResponse, error) {
	return s.mutateActive(ctx, "StartBreak", teamMemberID, func(shift *domain.Shift, now time.Time) error {
		if shift.OpenBreakIndex() >= 0 {
			return ErrBreakAlreadyOpen
		}
		shift.Breaks = append(shift.Breaks, domain.Break{Start: now})
		return nil
	})
}

// EndBreak завершает открытый перерыв
func (s *Service) EndBreak(ctx context.Context, teamMemberID int64) (*models.ShiftResponse, error) {
	return s.mutateActive(ctx, "EndBreak", teamMemberID, func(shift *domain.Shift, now time.Time) error {
		if !closeOpenBreak(shift, now) {
			return ErrNoOpenBreak
		}
		return nil
	})
}

// ClockOut закрывает смену. Открытый перерыв закрывается в тот же момент.
func (s *Service) ClockOut(ctx context.Context, teamMemberID int64) (*models.ShiftResponse, error) {
	resp, err := s.mutateActive(ctx, "ClockOut", teamMemberID, func(shift *domain.Shift, now time.Time) error {
		closeOpenBreak(shift, now)
		shift.ShiftEnd = &now
		shift.Status = domain.ShiftCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncShiftCompleted()
	return resp, nil
}

// GetShift возвращает смену с расчетом. Для открытой смены расчет на текущий момент.
func (s *Service) GetShift(ctx context.Context, id int64) (*models.ShiftResponse, error) {
	shift, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shiftRepo.ErrShiftNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("GetShift: repository error for shift=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetShift - repository error: %v", ErrInternal, err)
	}

	return s.withCalculation(ctx, shift, s.timeProvider.Now().UTC())
}

// GetActive возвращает открытую смену мастера
func (s *Service) GetActive(ctx context.Context, teamMemberID int64) (*models.ShiftResponse, error) {
	shift, err := s.shiftRepo.GetActiveByMember(ctx, teamMemberID)
	if err != nil {
		if errors.Is(err, shiftRepo.ErrShiftNotFound) {
			return nil, ErrNoActiveShift
		}
		s.logger.Error("GetActive: repository error for member=%d: %v", teamMemberID, err)
		return nil, fmt.Errorf("%w: GetActive - repository error: %v", ErrInternal, err)
	}

	return s.withCalculation(ctx, shift, s.timeProvider.Now().UTC())
}

// MarkPaid переводит завершенные смены в paid. Активные и уже оплаченные пропускаются.
func (s *Service) MarkPaid(ctx context.Context, req *models.MarkPaidRequest) (*models.MarkPaidResult, error) {
	s.logger.Info("MarkPaid: %d shifts requested", len(req.ShiftIDs))

	if len(req.ShiftIDs) == 0 {
		return nil, fmt.Errorf("%w: shift ids are required", ErrInvalidInput)
	}
	if len(req.ShiftIDs) > domain.MaxMarkPaidBatch {
		return nil, fmt.Errorf("%w: at most %d shifts per request", ErrInvalidInput, domain.MaxMarkPaidBatch)
	}

	ids := uniqueIDs(req.ShiftIDs)
	paid, err := s.shiftRepo.MarkPaid(ctx, ids, s.timeProvider.Now().UTC())
	if err != nil {
		s.logger.Error("MarkPaid: repository error: %v", err)
		return nil, fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
	}

	s.metrics.AddShiftsPaid(int(paid))
	if paid < int64(len(ids)) {
		s.logger.Warn("MarkPaid: only %d of %d shifts were completed", paid, len(ids))
	}

	return &models.MarkPaidResult{Requested: len(ids), Paid: paid}, nil
}

// Timesheet считает табель за период по завершенным и оплаченным сменам
func (s *Service) Timesheet(ctx context.Context, req *models.TimesheetRequest) (*models.TimesheetResponse, error) {
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

	s.logger.Info("Timesheet: period %s to %s", req.StartDate, req.EndDate)

	var (
		list     []*domain.Shift
		calendar payroll.HolidayCalendar
		rates    payroll.RateTable
	)
	// Смены и настройки оплаты читаются из одного снимка
	err = s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		list, err = s.shiftRepo.List(ctx, domain.ShiftsFilter{
			ShopID:        req.ShopID,
			TeamMemberIDs: req.TeamMemberIDs,
			StartDate:     start,
			EndDate:       end,
			Statuses:      []domain.ShiftStatus{domain.ShiftCompleted, domain.ShiftPaid},
		})
		if err != nil {
			s.logger.Error("Timesheet: repository error: %v", err)
			return fmt.Errorf("%w: Timesheet - repository error: %v", ErrInternal, err)
		}

		calendar, rates, err = s.loadPayrollSettings(ctx, &start, &end)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := &models.TimesheetResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Rows:      []models.TimesheetRowResponse{},
	}

	for _, row := range payroll.AggregateTimesheet(list, calendar.DayType, rates.Rate) {
		item := models.TimesheetRowResponse{
			TeamMemberID:      row.TeamMemberID,
			NetHours:          payroll.Round2(row.NetHours),
			TotalPay:          payroll.Round2(row.TotalPay),
			DaysWorked:        row.DaysWorked,
			TotalBreakMinutes: row.TotalBreakMinutes,
		}
		member, err := s.catalogRepo.GetTeamMember(ctx, row.TeamMemberID)
		if err != nil {
			s.logger.Warn("Timesheet: failed to get member id=%d, name left empty: %v", row.TeamMemberID, err)
		} else {
			item.TeamMemberName = member.Name
		}

		resp.Rows = append(resp.Rows, item)
		resp.TotalNetHours += row.NetHours
		resp.TotalPay += row.TotalPay
	}
	resp.TotalNetHours = payroll.Round2(resp.TotalNetHours)
	resp.TotalPay = payroll.Round2(resp.TotalPay)

	return resp, nil
}

// Вспомогательные методы

func (s *Service) mutateActive(
	ctx context.Context,
	op string,
	teamMemberID int64,
	mutate func(shift *domain.Shift, now time.Time) error,
) (*models.ShiftResponse, error) {
	s.logger.Info("%s: member=%d", op, teamMemberID)

	now := s.timeProvider.Now().UTC()
	var updated *domain.Shift

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		shift, err := s.shiftRepo.GetActiveByMember(ctx, teamMemberID)
		if err != nil {
			if errors.Is(err, shiftRepo.ErrShiftNotFound) {
				return ErrNoActiveShift
			}
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}

		if err := mutate(shift, now); err != nil {
			return err
		}
		shift.TotalBreakMinutes = shift.ClosedBreakMinutes()
		shift.UpdatedAt = now

		if err := s.shiftRepo.Update(ctx, shift); err != nil {
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
		updated = shift
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("%s: member=%d: %v", op, teamMemberID, err)
		} else {
			s.logger.Warn("%s: member=%d: %v", op, teamMemberID, err)
		}
		return nil, err
	}

	s.logger.Info("%s: shift id=%d updated", op, updated.ID)
	return s.withCalculation(ctx, updated, now)
}

func (s *Service) withCalculation(ctx context.Context, shift *domain.Shift, now time.Time) (*models.ShiftResponse, error) {
	calendar, rates, err := s.loadPayrollSettings(ctx, &shift.Date, &shift.Date)
	if err != nil {
		return nil, err
	}

	calc := payroll.CalculateShift(shift, calendar.DayType, rates.Rate, now)
	return models.FromDomainShift(shift, calc), nil
}

func (s *Service) loadPayrollSettings(ctx context.Context, from, to *time.Time) (payroll.HolidayCalendar, payroll.RateTable, error) {
	holidays, err := s.payrollRepo.ListHolidays(ctx, from, to, true)
	if err != nil {
		s.logger.Error("loadPayrollSettings: failed to load holidays: %v", err)
		return nil, nil, fmt.Errorf("%w: loadPayrollSettings - holidays: %v", ErrInternal, err)
	}

	rates, err := s.payrollRepo.ListRates(ctx)
	if err != nil {
		s.logger.Error("loadPayrollSettings: failed to load rates: %v", err)
		return nil, nil, fmt.Errorf("%w: loadPayrollSettings - rates: %v", ErrInternal, err)
	}

	return payroll.NewHolidayCalendar(holidays), payroll.NewRateTable(rates), nil
}

func (s *Service) localDate(ctx context.Context, shopID int64, now time.Time) (time.Time, error) {
	shop, err := s.catalogRepo.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrShopNotFound) {
			return time.Time{}, ErrShopNotFound
		}
		return time.Time{}, fmt.Errorf("%w: localDate - catalog error: %v", ErrInternal, err)
	}

	loc, err := shop.Location()
	if err != nil {
		s.logger.Warn("localDate: shop=%d has unknown timezone %q, using UTC", shopID, shop.Timezone)
		loc = time.UTC
	}

	date, _ := zoned.UTCToLocal(now, loc)
	return date, nil
}

// closeOpenBreak закрывает открытый перерыв моментом at
func closeOpenBreak(shift *domain.Shift, at time.Time) bool {
	i := shift.OpenBreakIndex()
	if i < 0 {
		return false
	}

	end := at
	shift.Breaks[i].End = &end
	shift.Breaks[i].DurationMinutes = domain.BreakMinutes(shift.Breaks[i].Start, end)
	return true
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
