package reservation

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

const tableReservations = "temporary_reservations"

var reservationColumns = []string{
	"id",
	"session_id",
	"team_member_id",
	"shop_id",
	"service_id",
	"date",
	"start_time",
	"end_time",
	"expires_at",
	"created_at",
}

// Repository хранилище временных удержаний в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Replace сохраняет удержание сессии, заменяя предыдущее (одно удержание на сессию).
// session_id уникален, замена выполняется одним upsert.
func (r *Repository) Replace(ctx context.Context, res *domain.TemporaryReservation) (*domain.TemporaryReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableReservations).
		Columns("session_id", "team_member_id", "shop_id", "service_id", "date", "start_time", "end_time", "expires_at", "created_at").
		Values(res.SessionID, res.TeamMemberID, res.ShopID, res.ServiceID, res.Date, res.StartTime, res.EndTime, res.ExpiresAt, res.CreatedAt).
		Suffix(`ON CONFLICT (session_id) DO UPDATE SET
			team_member_id = EXCLUDED.team_member_id,
			shop_id = EXCLUDED.shop_id,
			service_id = EXCLUDED.service_id,
			date = EXCLUDED.date,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			expires_at = EXCLUDED.expires_at,
			created_at = EXCLUDED.created_at
		RETURNING id`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Replace - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID); err != nil {
		return nil, fmt.Errorf("%w: Replace - execute upsert: %v", ErrExecQuery, err)
	}

	return res, nil
}

// GetBySession возвращает удержание сессии
func (r *Repository) GetBySession(ctx context.Context, sessionID string) (*domain.TemporaryReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySession - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySession - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// DeleteBySession удаляет удержание сессии. Отсутствие удержания не ошибка.
func (r *Repository) DeleteBySession(ctx context.Context, sessionID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableReservations).
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBySession - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteBySession - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// PurgeExpired удаляет все удержания с expires_at <= now
func (r *Repository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableReservations).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - execute delete: %v", ErrExecQuery, err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return purged, nil
}

// ListForDate возвращает удержания салона на дату
func (r *Repository) ListForDate(ctx context.Context, shopID int64, date time.Time) ([]*domain.TemporaryReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"shop_id": shopID, "date": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	list := make([]*domain.TemporaryReservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListForDate - scan row: %v", ErrScanRow, err)
		}
		list = append(list, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListForDate - rows error: %v", ErrScanRow, err)
	}

	return list, nil
}

func scanReservation(row interface{ Scan(dest ...interface{}) error }) (*domain.TemporaryReservation, error) {
	var res domain.TemporaryReservation
	err := row.Scan(
		&res.ID,
		&res.SessionID,
		&res.TeamMemberID,
		&res.ShopID,
		&res.ServiceID,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.ExpiresAt,
		&res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
