// Package catalog читает справочники: салоны, услуги, мастера и клиенты.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository репозиторий справочников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetShop получает салон по ID
func (r *Repository) GetShop(ctx context.Context, id int64) (*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "timezone", "is_active").
		From("shops").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetShop - build select query: %v", ErrBuildQuery, err)
	}

	var shop domain.Shop
	err = executor.QueryRowContext(ctx, query, args...).Scan(&shop.ID, &shop.Name, &shop.Timezone, &shop.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetShop - scan shop: %v", ErrScanRow, err)
	}

	return &shop, nil
}

// GetService получает услугу салона
func (r *Repository) GetService(ctx context.Context, shopID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "shop_id", "name", "duration_minutes", "price", "is_active").
		From("services").
		Where(squirrel.Eq{"id": serviceID, "shop_id": shopID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.ShopID, &s.Name, &s.DurationMinutes, &s.Price, &s.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &s, nil
}

// GetTeamMember получает мастера по ID
func (r *Repository) GetTeamMember(ctx context.Context, id int64) (*domain.TeamMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "shop_id", "name", "is_active").
		From("team_members").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTeamMember - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.TeamMember
	err = executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.ShopID, &m.Name, &m.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTeamMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTeamMember - scan team member: %v", ErrScanRow, err)
	}

	return &m, nil
}

// ListMembersForService возвращает активных мастеров салона, оказывающих услугу
func (r *Repository) ListMembersForService(ctx context.Context, shopID, serviceID int64) ([]*domain.TeamMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("tm.id", "tm.shop_id", "tm.name", "tm.is_active").
		From("team_members tm").
		Join("team_member_services tms ON tms.team_member_id = tm.id").
		Where(squirrel.Eq{"tm.shop_id": shopID, "tms.service_id": serviceID, "tm.is_active": true}).
		OrderBy("tm.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListMembersForService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListMembersForService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members := make([]*domain.TeamMember, 0)
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(&m.ID, &m.ShopID, &m.Name, &m.IsActive); err != nil {
			return nil, fmt.Errorf("%w: ListMembersForService - scan row: %v", ErrScanRow, err)
		}
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListMembersForService - rows error: %v", ErrScanRow, err)
	}

	return members, nil
}

// MemberOffersService проверяет, что мастер оказывает услугу
func (r *Repository) MemberOffersService(ctx context.Context, teamMemberID, serviceID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("team_member_services").
		Where(squirrel.Eq{"team_member_id": teamMemberID, "service_id": serviceID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MemberOffersService - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: MemberOffersService - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// GetClientByUserID получает карточку клиента пользователя сервиса авторизации
func (r *Repository) GetClientByUserID(ctx context.Context, userID string) (*domain.Client, error) {
	return r.getClient(ctx, "GetClientByUserID", squirrel.Eq{"user_id": userID})
}

// GetClientByID получает клиента по ID
func (r *Repository) GetClientByID(ctx context.Context, id int64) (*domain.Client, error) {
	return r.getClient(ctx, "GetClientByID", squirrel.Eq{"id": id})
}

func (r *Repository) getClient(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "name", "phone", "email").
		From("clients").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var c domain.Client
	var userID sql.NullString
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &userID, &c.Name, &c.Phone, &c.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan client: %v", ErrScanRow, op, err)
	}

	c.UserID = userID.String
	return &c, nil
}
