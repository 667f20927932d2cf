package repository

import (
	"context"
	"fmt"

	"poolbot/internal/config"
	"poolbot/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Stores хранилища броней и вопросов одного бэкенда.
type Stores struct {
	Bookings  domain.BookingRepository
	Questions domain.QuestionRepository
	client    *redis.Client
}

// NewMemoryStores хранилища в памяти процесса
func NewMemoryStores() *Stores {
	return &Stores{
		Bookings:  NewMemoryBookings(),
		Questions: NewMemoryQuestions(),
	}
}

// NewStores хранилища в Redis с префиксом ключей и сроком хранения из секции redis.
func NewStores(client *redis.Client, cfg config.RedisConfig) *Stores {
	ttl := cfg.TTL()
	return &Stores{
		Bookings:  NewRedisBookings(client, cfg.KeyPrefix, ttl),
		Questions: NewRedisQuestions(client, cfg.KeyPrefix, ttl),
		client:    client,
	}
}

// Connect подключается к Redis и проверяет соединение.
// Без адреса возвращает хранилища в памяти.
func Connect(ctx context.Context, cfg config.RedisConfig) (*Stores, error) {
	if cfg.Address == "" {
		return NewMemoryStores(), nil
	}

	client := NewRedisClient(cfg)
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Address, err)
	}
	return NewStores(client, cfg), nil
}

// Backend имя бэкенда для логов
func (s *Stores) Backend() string {
	if s.client != nil {
		return "redis"
	}
	return "memory"
}

// Close закрывает соединение с Redis, если оно есть
func (s *Stores) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// NewRedisClient создает клиент Redis по секции redis
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}
