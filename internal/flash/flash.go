// Package flash stores one-time notifications per session in Redis.
package flash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KindSuccess = "success"
	KindError   = "error"

	defaultTTL = time.Hour
)

var ErrNoSession = errors.New("flash: no session id")

type Message struct {
	Kind string `json:"kind"`
	Key  string `json:"key"`
}

// Notifier queues flash messages for the next rendered page.
type Notifier interface {
	AddFlash(ctx context.Context, sessionID, kind, key string) error
}

// Bag hands out queued messages exactly once.
type Bag interface {
	Consume(ctx context.Context, sessionID string) ([]Message, error)
}

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: defaultTTL}
}

func key(sessionID string) string {
	return "flash:" + sessionID
}

func (s *RedisStore) AddFlash(ctx context.Context, sessionID, kind, msgKey string) error {
	if sessionID == "" {
		return ErrNoSession
	}
	data, err := json.Marshal(Message{Kind: kind, Key: msgKey})
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key(sessionID), data)
	pipe.Expire(ctx, key(sessionID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store flash: %w", err)
	}
	return nil
}

// Consume returns the queued messages in insertion order and deletes them.
func (s *RedisStore) Consume(ctx context.Context, sessionID string) ([]Message, error) {
	if sessionID == "" {
		return nil, nil
	}

	pipe := s.rdb.TxPipeline()
	rng := pipe.LRange(ctx, key(sessionID), 0, -1)
	pipe.Del(ctx, key(sessionID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("consume flashes: %w", err)
	}

	raw := rng.Val()
	msgs := make([]Message, 0, len(raw))
	for _, item := range raw {
		var m Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
