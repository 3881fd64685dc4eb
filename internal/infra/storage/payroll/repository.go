package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const (
	tableRates    = "hourly_rates"
	tableHolidays = "public_holidays"
)

// Repository репозиторий ставок и праздничных дней
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListRates возвращает все ставки (активные и нет)
func (r *Repository) ListRates(ctx context.Context) ([]*domain.HourlyRate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "day_type", "rate", "is_active", "updated_at").
		From(tableRates).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rates := make([]*domain.HourlyRate, 0)
	for rows.Next() {
		var rate domain.HourlyRate
		if err := rows.Scan(&rate.ID, &rate.DayType, &rate.Rate, &rate.IsActive, &rate.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListRates - scan row: %v", ErrScanRow, err)
		}
		rates = append(rates, &rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRates - rows error: %v", ErrScanRow, err)
	}

	return rates, nil
}

// UpsertRate создает или обновляет ставку для типа дня
func (r *Repository) UpsertRate(ctx context.Context, rate *domain.HourlyRate) (*domain.HourlyRate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableRates).
		Columns("day_type", "rate", "is_active", "updated_at").
		Values(rate.DayType, rate.Rate, rate.IsActive, rate.UpdatedAt).
		Suffix(`ON CONFLICT (day_type) DO UPDATE SET
			rate = EXCLUDED.rate,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
		RETURNING id`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRate - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rate.ID); err != nil {
		return nil, fmt.Errorf("%w: UpsertRate - execute upsert: %v", ErrExecQuery, err)
	}

	return rate, nil
}

// ListHolidays возвращает праздники за период. nil границы - без ограничения.
func (r *Repository) ListHolidays(ctx context.Context, from, to *time.Time, onlyActive bool) ([]*domain.PublicHoliday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "date", "name", "is_active", "created_at").
		From(tableHolidays).
		OrderBy("date ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *from})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *to})
	}
	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]*domain.PublicHoliday, 0)
	for rows.Next() {
		var h domain.PublicHoliday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.IsActive, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListHolidays - scan row: %v", ErrScanRow, err)
		}
		holidays = append(holidays, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - rows error: %v", ErrScanRow, err)
	}

	return holidays, nil
}

// CreateHoliday добавляет праздничный день
func (r *Repository) CreateHoliday(ctx context.Context, h *domain.PublicHoliday) (*domain.PublicHoliday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableHolidays).
		Columns("date", "name", "is_active").
		Values(h.Date, h.Name, h.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateHoliday - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &h.CreatedAt)
	if pgerrors.IsUniqueViolation(err) {
		return nil, ErrDuplicateHoliday
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateHoliday - execute insert: %v", ErrExecQuery, err)
	}

	return h, nil
}

// SetHolidayActive включает или выключает праздник
func (r *Repository) SetHolidayActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableHolidays).
		Set("is_active", active).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetHolidayActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetHolidayActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetHolidayActive - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrHolidayNotFound
	}

	return nil
}
