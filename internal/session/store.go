// Package session keeps the signed-in employee's record in a key-value store.
// The record's presence is the only authentication signal; its fields are
// carried for display and never validated here.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store is the key-value collaborator.  Get returns ok=false for an absent key.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// RedisStore implements Store on Redis and announces every change of a key
// on a pub/sub channel derived from it.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore namespaces every key under prefix (e.g. "staff").
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

// Channel is the pub/sub channel carrying change events for key.
func (s *RedisStore) Channel(key string) string {
	return s.key(key) + ":events"
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

// Set writes the value with no expiry and publishes "set".
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, s.key(key), value, 0)
	pipe.Publish(ctx, s.Channel(key), eventSet)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove deletes the key and publishes "removed".
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, s.key(key))
	pipe.Publish(ctx, s.Channel(key), eventRemoved)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

const (
	eventSet     = "set"
	eventRemoved = "removed"
)

// Subscribe listens for change events on key.  The subscription is confirmed
// before it is returned so no change published afterwards is missed.
func (s *RedisStore) Subscribe(ctx context.Context, key string) (*redis.PubSub, error) {
	sub := s.rdb.Subscribe(ctx, s.Channel(key))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", key, err)
	}
	return sub, nil
}
