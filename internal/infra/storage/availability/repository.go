package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const tableWindows = "availability_windows"

var windowColumns = []string{
	"id",
	"team_member_id",
	"shop_id",
	"date",
	"start_time",
	"end_time",
	"is_available",
	"created_at",
}

// Repository репозиторий окон доступности мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет одно окно
func (r *Repository) Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableWindows).
		Columns("team_member_id", "shop_id", "date", "start_time", "end_time", "is_available").
		Values(w.TeamMemberID, w.ShopID, w.Date, w.StartTime, w.EndTime, w.IsAvailable).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &w.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return w, nil
}

// CreateBatch вставляет окна одним запросом
func (r *Repository) CreateBatch(ctx context.Context, windows []*domain.AvailabilityWindow) (int64, error) {
	if len(windows) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(tableWindows).
		Columns("team_member_id", "shop_id", "date", "start_time", "end_time", "is_available")
	for _, w := range windows {
		insertBuilder = insertBuilder.Values(w.TeamMemberID, w.ShopID, w.Date, w.StartTime, w.EndTime, w.IsAvailable)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - get rows affected: %v", ErrExecQuery, err)
	}

	return inserted, nil
}

// DeleteRange удаляет окна мастера в салоне за период [start, end] включительно
func (r *Repository) DeleteRange(ctx context.Context, teamMemberID, shopID int64, start, end time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableWindows).
		Where(squirrel.Eq{"team_member_id": teamMemberID, "shop_id": shopID}).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteRange - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteRange - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteRange - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// GetByID получает окно по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From(tableWindows).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var w domain.AvailabilityWindow
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&w.ID, &w.TeamMemberID, &w.ShopID, &w.Date, &w.StartTime, &w.EndTime, &w.IsAvailable, &w.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan window: %v", ErrScanRow, err)
	}

	return &w, nil
}

// List возвращает окна салона за период, упорядоченные по дате, мастеру и началу
func (r *Repository) List(ctx context.Context, filter domain.WindowsFilter) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(windowColumns...).
		From(tableWindows).
		Where(squirrel.Eq{"shop_id": filter.ShopID}).
		Where(squirrel.GtOrEq{"date": filter.StartDate}).
		Where(squirrel.LtOrEq{"date": filter.EndDate}).
		OrderBy("date ASC", "team_member_id ASC", "start_time ASC")

	if len(filter.TeamMemberIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"team_member_id": filter.TeamMemberIDs})
	}
	if filter.OnlyAvailable {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_available": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		var w domain.AvailabilityWindow
		if err := rows.Scan(
			&w.ID, &w.TeamMemberID, &w.ShopID, &w.Date, &w.StartTime, &w.EndTime, &w.IsAvailable, &w.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// Delete удаляет окно
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableWindows).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}
