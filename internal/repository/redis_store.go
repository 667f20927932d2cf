package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"poolbot/internal/domain"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "poolbot"

var (
	_ domain.BookingRepository  = (*RedisBookings)(nil)
	_ domain.QuestionRepository = (*RedisQuestions)(nil)
)

// RedisBookings хранит брони списком на каждую дату (RPUSH/LRANGE).
type RedisBookings struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisBookings ttl <= 0 означает хранение без срока.
func NewRedisBookings(client *redis.Client, prefix string, ttl time.Duration) *RedisBookings {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisBookings{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisBookings) key(date string) string {
	return r.prefix + ":booked:" + date
}

func (r *RedisBookings) RecordBooking(ctx context.Context, date, slot string) error {
	key := r.key(date)

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, slot)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record booking %s %s: %w", date, slot, err)
	}
	return nil
}

func (r *RedisBookings) SlotsBookedFor(ctx context.Context, date string) ([]string, error) {
	slots, err := r.client.LRange(ctx, r.key(date), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load booked slots %s: %w", date, err)
	}
	return slots, nil
}

// RedisQuestions последний вопрос пользователя строкой с TTL.
type RedisQuestions struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisQuestions(client *redis.Client, prefix string, ttl time.Duration) *RedisQuestions {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisQuestions{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisQuestions) key(userID int64) string {
	return r.prefix + ":question:" + strconv.FormatInt(userID, 10)
}

func (r *RedisQuestions) SaveQuestion(ctx context.Context, userID int64, text string) error {
	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, r.key(userID), text, ttl).Err(); err != nil {
		return fmt.Errorf("save question for %d: %w", userID, err)
	}
	return nil
}

func (r *RedisQuestions) LastQuestion(ctx context.Context, userID int64) (string, bool, error) {
	q, err := r.client.Get(ctx, r.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load question for %d: %w", userID, err)
	}
	return q, true, nil
}
