package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const defaultRedisPrefix = "reservation"

// RedisStore хранилище удержаний в Redis.
//
// Ключи:
//   - {prefix}:session:{session_id} - удержание (JSON) с TTL до expires_at
//   - {prefix}:day:{shop_id}:{date} - множество сессий с удержанием на дату
//   - {prefix}:expiry - ZSET сессий по expires_at (для PurgeExpired)
//   - {prefix}:seq - счетчик ID
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisStore создает Redis хранилище. Пустой prefix - "reservation".
func NewRedisStore(rdb redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

type redisRecord struct {
	ID           int64            `json:"id"`
	SessionID    string           `json:"session_id"`
	TeamMemberID int64            `json:"team_member_id"`
	ShopID       int64            `json:"shop_id"`
	ServiceID    int64            `json:"service_id"`
	Date         string           `json:"date"`
	StartTime    types.TimeString `json:"start_time"`
	EndTime      types.TimeString `json:"end_time"`
	ExpiresAt    time.Time        `json:"expires_at"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (s *RedisStore) sessionKey(sessionID string) string {
	return s.prefix + ":session:" + sessionID
}

func (s *RedisStore) dayKey(shopID int64, date time.Time) string {
	return fmt.Sprintf("%s:day:%d:%s", s.prefix, shopID, date.Format(types.DateLayout))
}

func (s *RedisStore) expiryKey() string {
	return s.prefix + ":expiry"
}

func (s *RedisStore) seqKey() string {
	return s.prefix + ":seq"
}

// Replace сохраняет удержание сессии, снимая предыдущее
func (s *RedisStore) Replace(ctx context.Context, res *domain.TemporaryReservation) (*domain.TemporaryReservation, error) {
	previous, err := s.GetBySession(ctx, res.SessionID)
	if err != nil && !errors.Is(err, ErrReservationNotFound) {
		return nil, err
	}

	id, err := s.rdb.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: Replace - incr seq: %v", ErrRedis, err)
	}
	res.ID = id

	payload, err := json.Marshal(toRecord(res))
	if err != nil {
		return nil, fmt.Errorf("%w: Replace: %v", ErrCodec, err)
	}

	ttl := res.ExpiresAt.Sub(res.CreatedAt)
	if ttl < time.Millisecond {
		ttl = time.Millisecond
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if previous != nil {
			pipe.SRem(ctx, s.dayKey(previous.ShopID, previous.Date), res.SessionID)
		}
		pipe.Set(ctx, s.sessionKey(res.SessionID), payload, ttl)
		pipe.SAdd(ctx, s.dayKey(res.ShopID, res.Date), res.SessionID)
		pipe.ZAdd(ctx, s.expiryKey(), redis.Z{
			Score:  float64(res.ExpiresAt.UnixMilli()),
			Member: res.SessionID,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: Replace - pipeline: %v", ErrRedis, err)
	}

	return res, nil
}

// GetBySession возвращает удержание сессии
func (s *RedisStore) GetBySession(ctx context.Context, sessionID string) (*domain.TemporaryReservation, error) {
	raw, err := s.rdb.Get(ctx, s.sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySession: %v", ErrRedis, err)
	}

	return decodeRecord(raw)
}

// DeleteBySession снимает удержание сессии. Отсутствие удержания не ошибка.
func (s *RedisStore) DeleteBySession(ctx context.Context, sessionID string) error {
	existing, err := s.GetBySession(ctx, sessionID)
	if errors.Is(err, ErrReservationNotFound) {
		return s.rdb.ZRem(ctx, s.expiryKey(), sessionID).Err()
	}
	if err != nil {
		return err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		s.removePipe(ctx, pipe, existing)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: DeleteBySession - pipeline: %v", ErrRedis, err)
	}

	return nil
}

// PurgeExpired снимает удержания с expires_at <= now
func (s *RedisStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	sessions, err := s.rdb.ZRangeByScore(ctx, s.expiryKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - zrangebyscore: %v", ErrRedis, err)
	}

	var purged int64
	for _, sessionID := range sessions {
		existing, err := s.GetBySession(ctx, sessionID)
		if err != nil && !errors.Is(err, ErrReservationNotFound) {
			return purged, err
		}

		// Сессия могла обновить удержание после выборки
		if existing != nil && existing.IsLive(now) {
			continue
		}

		_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if existing != nil {
				s.removePipe(ctx, pipe, existing)
			} else {
				pipe.ZRem(ctx, s.expiryKey(), sessionID)
			}
			return nil
		})
		if err != nil {
			return purged, fmt.Errorf("%w: PurgeExpired - pipeline: %v", ErrRedis, err)
		}
		purged++
	}

	return purged, nil
}

// ListForDate возвращает удержания салона на дату, попутно чистя индекс от истекших ключей
func (s *RedisStore) ListForDate(ctx context.Context, shopID int64, date time.Time) ([]*domain.TemporaryReservation, error) {
	dayKey := s.dayKey(shopID, date)

	sessions, err := s.rdb.SMembers(ctx, dayKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - smembers: %v", ErrRedis, err)
	}

	list := make([]*domain.TemporaryReservation, 0, len(sessions))
	if len(sessions) == 0 {
		return list, nil
	}

	keys := make([]string, len(sessions))
	for i, sessionID := range sessions {
		keys[i] = s.sessionKey(sessionID)
	}

	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - mget: %v", ErrRedis, err)
	}

	var stale []interface{}
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			stale = append(stale, sessions[i])
			continue
		}
		res, err := decodeRecord([]byte(str))
		if err != nil {
			return nil, err
		}
		list = append(list, res)
	}

	if len(stale) > 0 {
		if err := s.rdb.SRem(ctx, dayKey, stale...).Err(); err != nil {
			return nil, fmt.Errorf("%w: ListForDate - srem stale: %v", ErrRedis, err)
		}
	}

	return list, nil
}

func (s *RedisStore) removePipe(ctx context.Context, pipe redis.Pipeliner, res *domain.TemporaryReservation) {
	pipe.Del(ctx, s.sessionKey(res.SessionID))
	pipe.SRem(ctx, s.dayKey(res.ShopID, res.Date), res.SessionID)
	pipe.ZRem(ctx, s.expiryKey(), res.SessionID)
}

func toRecord(res *domain.TemporaryReservation) redisRecord {
	return redisRecord{
		ID:           res.ID,
		SessionID:    res.SessionID,
		TeamMemberID: res.TeamMemberID,
		ShopID:       res.ShopID,
		ServiceID:    res.ServiceID,
		Date:         res.Date.Format(types.DateLayout),
		StartTime:    res.StartTime,
		EndTime:      res.EndTime,
		ExpiresAt:    res.ExpiresAt.UTC(),
		CreatedAt:    res.CreatedAt.UTC(),
	}
}

func decodeRecord(raw []byte) (*domain.TemporaryReservation, error) {
	var rec redisRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCodec, err)
	}

	date, err := types.ParseDate(rec.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: decode date: %v", ErrCodec, err)
	}

	return &domain.TemporaryReservation{
		ID:           rec.ID,
		SessionID:    rec.SessionID,
		TeamMemberID: rec.TeamMemberID,
		ShopID:       rec.ShopID,
		ServiceID:    rec.ServiceID,
		Date:         date,
		StartTime:    rec.StartTime,
		EndTime:      rec.EndTime,
		ExpiresAt:    rec.ExpiresAt,
		CreatedAt:    rec.CreatedAt,
	}, nil
}
