package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisClient(addr, password string, db int, ttl time.Duration, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Redis connected successfully", zap.String("addr", addr))

	return &RedisClient{client: rdb, ttl: ttl, log: log}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

// Кэш списков значений для выпадающих списков (поставщики, категории и т.п.).
// Промах и ошибка неразличимы для вызывающего — он идёт в базу.
func (r *RedisClient) GetValues(ctx context.Context, key string) ([]string, bool) {
	raw, err := r.client.Get(ctx, "values:"+key).Bytes()
	if err != nil {
		return nil, false
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		r.log.Warn("Повреждённое значение в кэше", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return values, true
}

func (r *RedisClient) SetValues(ctx context.Context, key string, values []string) {
	raw, err := json.Marshal(values)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, "values:"+key, raw, r.ttl).Err(); err != nil {
		r.log.Warn("Не удалось записать в кэш", zap.String("key", key), zap.Error(err))
	}
}

func (r *RedisClient) Invalidate(ctx context.Context, keys ...string) {
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, "values:"+k)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		r.log.Warn("Не удалось сбросить кэш", zap.Error(err))
	}
}
