package payroll_settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	payrollRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/payroll"
	"github.com/m04kA/SMC-SalonBooking/internal/service/payroll_settings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const maxHolidayNameLength = 100

// Service сервис настроек оплаты: ставки по типам дней и праздники
type Service struct {
	payrollRepo  PayrollRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(payrollRepo PayrollRepository, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		payrollRepo:  payrollRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ListRates возвращает ставки в порядке типов дней. Ненастроенный тип отдается с нулевой ставкой.
func (s *Service) ListRates(ctx context.Context) (*models.RatesResponse, error) {
	rates, err := s.payrollRepo.ListRates(ctx)
	if err != nil {
		s.logger.Error("ListRates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRates - repository error: %v", ErrInternal, err)
	}

	byType := make(map[domain.DayType]*domain.HourlyRate, len(rates))
	for _, r := range rates {
		byType[r.DayType] = r
	}

	resp := &models.RatesResponse{Rates: make([]models.RateResponse, 0, len(domain.DayTypes))}
	for _, dt := range domain.DayTypes {
		r, ok := byType[dt]
		if !ok {
			r = &domain.HourlyRate{DayType: dt}
		}
		resp.Rates = append(resp.Rates, models.FromDomainRate(r))
	}

	return resp, nil
}

// UpsertRate создает или обновляет ставку типа дня
func (s *Service) UpsertRate(ctx context.Context, req *models.UpsertRateRequest) (*models.RateResponse, error) {
	s.logger.Info("UpsertRate: day_type=%s, rate=%.2f", req.DayType, req.Rate)

	dayType := domain.DayType(req.DayType)
	if !dayType.Valid() {
		s.logger.Warn("UpsertRate: invalid day type=%s", req.DayType)
		return nil, fmt.Errorf("%w: invalid day type", ErrInvalidInput)
	}
	if req.Rate < 0 {
		return nil, fmt.Errorf("%w: rate must not be negative", ErrInvalidInput)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	saved, err := s.payrollRepo.UpsertRate(ctx, &domain.HourlyRate{
		DayType:   dayType,
		Rate:      req.Rate,
		IsActive:  isActive,
		UpdatedAt: s.timeProvider.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("UpsertRate: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertRate - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainRate(saved)
	return &resp, nil
}

// ListHolidays возвращает праздники, опционально за год
func (s *Service) ListHolidays(ctx context.Context, req *models.ListHolidaysRequest) (*models.HolidaysResponse, error) {
	var from, to *time.Time
	if req.Year != nil {
		if *req.Year < 1970 || *req.Year > 9999 {
			return nil, fmt.Errorf("%w: invalid year", ErrInvalidInput)
		}
		start := time.Date(*req.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(*req.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
		from, to = &start, &end
	}

	holidays, err := s.payrollRepo.ListHolidays(ctx, from, to, req.OnlyActive)
	if err != nil {
		s.logger.Error("ListHolidays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListHolidays - repository error: %v", ErrInternal, err)
	}

	resp := &models.HolidaysResponse{Holidays: make([]models.HolidayResponse, 0, len(holidays))}
	for _, h := range holidays {
		resp.Holidays = append(resp.Holidays, models.FromDomainHoliday(h))
	}
	return resp, nil
}

// CreateHoliday добавляет праздничный день
func (s *Service) CreateHoliday(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("CreateHoliday: date=%s, name=%s", req.Date, req.Name)

	date, err := types.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxHolidayNameLength {
		return nil, fmt.Errorf("%w: invalid holiday name", ErrInvalidInput)
	}

	created, err := s.payrollRepo.CreateHoliday(ctx, &domain.PublicHoliday{Date: date, Name: name, IsActive: true})
	if err != nil {
		if errors.Is(err, payrollRepo.ErrDuplicateHoliday) {
			s.logger.Warn("CreateHoliday: holiday for %s already exists", req.Date)
			return nil, ErrHolidayExists
		}
		s.logger.Error("CreateHoliday: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateHoliday - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainHoliday(created)
	return &resp, nil
}

// SetHolidayActive включает или выключает праздник
func (s *Service) SetHolidayActive(ctx context.Context, id int64, active bool) error {
	s.logger.Info("SetHolidayActive: holiday=%d, active=%t", id, active)

	if err := s.payrollRepo.SetHolidayActive(ctx, id, active); err != nil {
		if errors.Is(err, payrollRepo.ErrHolidayNotFound) {
			return ErrHolidayNotFound
		}
		s.logger.Error("SetHolidayActive: repository error for holiday=%d: %v", id, err)
		return fmt.Errorf("%w: SetHolidayActive - repository error: %v", ErrInternal, err)
	}
	return nil
}
