package shift

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const tableShifts = "shifts"

var shiftColumns = []string{
	"id",
	"team_member_id",
	"shop_id",
	"date",
	"shift_start",
	"shift_end",
	"breaks",
	"total_break_minutes",
	"status",
	"paid_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий смен
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория смен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create открывает смену. Частичный уникальный индекс по активным сменам
// не дает открыть вторую смену мастеру.
func (r *Repository) Create(ctx context.Context, s *domain.Shift) (*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableShifts).
		Columns("team_member_id", "shop_id", "date", "shift_start", "breaks", "total_break_minutes", "status").
		Values(s.TeamMemberID, s.ShopID, s.Date, s.ShiftStart, breaksJSON(s.Breaks), s.TotalBreakMinutes, s.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if pgerrors.IsUniqueViolation(err) {
		return nil, ErrActiveShiftExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// GetByID получает смену. В транзакции строка блокируется.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Shift, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetActiveByMember получает открытую смену мастера. В транзакции строка блокируется.
func (r *Repository) GetActiveByMember(ctx context.Context, teamMemberID int64) (*domain.Shift, error) {
	return r.getOne(ctx, "GetActiveByMember", squirrel.Eq{
		"team_member_id": teamMemberID,
		"status":         domain.ShiftActive,
	})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(shiftColumns...).
		From(tableShifts).
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	s, err := scanShift(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan shift: %v", ErrScanRow, op, err)
	}

	return s, nil
}

// Update сохраняет перерывы, конец и статус смены
func (r *Repository) Update(ctx context.Context, s *domain.Shift) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableShifts).
		Set("shift_end", s.ShiftEnd).
		Set("breaks", breaksJSON(s.Breaks)).
		Set("total_break_minutes", s.TotalBreakMinutes).
		Set("status", s.Status).
		Set("updated_at", s.UpdatedAt).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrShiftNotFound
	}

	return nil
}

// MarkPaid переводит в paid только завершенные смены из списка.
// Возвращает количество фактически переведенных.
func (r *Repository) MarkPaid(ctx context.Context, ids []int64, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableShifts).
		Set("status", domain.ShiftPaid).
		Set("paid_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": ids, "status": domain.ShiftCompleted}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkPaid - execute update: %v", ErrExecQuery, err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkPaid - get rows affected: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// List возвращает смены за период [StartDate, EndDate]
func (r *Repository) List(ctx context.Context, filter domain.ShiftsFilter) ([]*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(shiftColumns...).
		From(tableShifts).
		Where(squirrel.GtOrEq{"date": filter.StartDate}).
		Where(squirrel.LtOrEq{"date": filter.EndDate}).
		OrderBy("date ASC", "team_member_id ASC", "shift_start ASC")

	if filter.ShopID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"shop_id": *filter.ShopID})
	}
	if len(filter.TeamMemberIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"team_member_id": filter.TeamMemberIDs})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
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

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return shifts, nil
}

func scanShift(row interface{ Scan(dest ...interface{}) error }) (*domain.Shift, error) {
	var s domain.Shift
	var breaks breaksJSON

	err := row.Scan(
		&s.ID,
		&s.TeamMemberID,
		&s.ShopID,
		&s.Date,
		&s.ShiftStart,
		&s.ShiftEnd,
		&breaks,
		&s.TotalBreakMinutes,
		&s.Status,
		&s.PaidAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Breaks = breaks
	return &s, nil
}
