package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mmeshcher/makburgers-bot/internal/model"
)

// DefaultKey ключ списка тикетов в Redis.
const DefaultKey = "mb:outbox:orders"

type cmdable interface {
	Ping(ctx context.Context) *redis.StatusCmd
	LPush(ctx context.Context, key string, values ...any) *redis.IntCmd
	RPush(ctx context.Context, key string, values ...any) *redis.IntCmd
	RPop(ctx context.Context, key string) *redis.StringCmd
	LLen(ctx context.Context, key string) *redis.IntCmd
}

// RedisQueue очередь тикетов в списке Redis: LPUSH добавляет в конец, RPOP читает из начала.
type RedisQueue struct {
	store cmdable
	raw   *redis.Client
	key   string
}

// NewRedisQueue подключается к Redis по URL и проверяет соединение.
func NewRedisQueue(ctx context.Context, url string) (*RedisQueue, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisQueue{store: raw, raw: raw, key: DefaultKey}, nil
}

// Push добавляет тикет в конец очереди.
func (q *RedisQueue) Push(ctx context.Context, t model.OrderTicket) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal ticket: %w", err)
	}
	if err := q.store.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("lpush ticket: %w", err)
	}
	return nil
}

// Requeue возвращает тикет в начало очереди.
func (q *RedisQueue) Requeue(ctx context.Context, t model.OrderTicket) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal ticket: %w", err)
	}
	if err := q.store.RPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("rpush ticket: %w", err)
	}
	return nil
}

// Pop извлекает тикет из начала очереди.
func (q *RedisQueue) Pop(ctx context.Context) (model.OrderTicket, error) {
	raw, err := q.store.RPop(ctx, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.OrderTicket{}, ErrEmpty
		}
		return model.OrderTicket{}, fmt.Errorf("rpop ticket: %w", err)
	}

	var t model.OrderTicket
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return model.OrderTicket{}, fmt.Errorf("decode ticket: %w", err)
	}
	return t, nil
}

// Len возвращает длину очереди.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.store.LLen(ctx, q.key).Result()
}

// Close закрывает соединение с Redis.
func (q *RedisQueue) Close() error {
	if q.raw == nil {
		return nil
	}
	return q.raw.Close()
}
