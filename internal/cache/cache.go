// Package cache memoizes predicted labels per training set and classifier
// settings.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-sod/medknn/internal/logging"
)

const keyPrefix = "knn:"

// Cache looks up and stores labels in bulk. GetMany reports a hit per key.
type Cache interface {
	GetMany(ctx context.Context, keys []string) ([]int, []bool, error)
	SetMany(ctx context.Context, keys []string, labels []int) error
	Close() error
}

// Key scopes a query key to the training set fingerprint and the settings
// that can change its label.
func Key(fingerprint string, k int, tieBreak string, queryKey string) string {
	return keyPrefix + fingerprint + ":" + strconv.Itoa(k) + ":" + tieBreak + ":" + queryKey
}

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Cache = (*Redis)(nil)

func New(ctx context.Context, cfg *Config) (*Redis, error) {
	logger := logging.FromContext(ctx)
	logger.Infof("connecting to redis %s", cfg.Addr)

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	return &Redis{client: client, ttl: cfg.TTL}, nil
}

func (r *Redis) GetMany(ctx context.Context, keys []string) ([]int, []bool, error) {
	if len(keys) == 0 {
		return nil, nil, nil
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("redis mget: %w", err)
	}
	labels, hits := labelsFromValues(values)
	return labels, hits, nil
}

func (r *Redis) SetMany(ctx context.Context, keys []string, labels []int) error {
	if len(keys) != len(labels) {
		return fmt.Errorf("got %d keys for %d labels", len(keys), len(labels))
	}
	if len(keys) == 0 {
		return nil
	}
	pipe := r.client.Pipeline()
	for i, key := range keys {
		pipe.Set(ctx, key, labels[i], r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline set: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// labelsFromValues converts an MGET reply. Missing or undecodable values are
// misses.
func labelsFromValues(values []interface{}) ([]int, []bool) {
	labels := make([]int, len(values))
	hits := make([]bool, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		label, err := strconv.Atoi(s)
		if err != nil {
			continue
		}
		labels[i] = label
		hits[i] = true
	}
	return labels, hits
}

// Nop never hits.
type Nop struct{}

var _ Cache = Nop{}

func (Nop) GetMany(_ context.Context, keys []string) ([]int, []bool, error) {
	return make([]int, len(keys)), make([]bool, len(keys)), nil
}

func (Nop) SetMany(context.Context, []string, []int) error {
	return nil
}

func (Nop) Close() error {
	return nil
}
