package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/wurt83ow/trivia-ext/internal/models"
	"github.com/wurt83ow/trivia-ext/internal/store"
)

// Store implements store.Store using Redis.
// Every result is kept as its own key; a hash holds the counters per score.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration of stored results. Counters never expire.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: "trivia:results:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(id string) string {
	return s.prefix + "result:" + id
}

func (s *Store) statsKey() string {
	return s.prefix + "stats"
}

// SaveResult stores the result once; a repeated id is a conflict.
func (s *Store) SaveResult(ctx context.Context, r models.Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	ok, err := s.client.SetNX(ctx, s.key(r.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	if !ok {
		return store.ErrConflict
	}

	if err := s.client.HIncrBy(ctx, s.statsKey(), strconv.Itoa(r.Correct), 1).Err(); err != nil {
		return fmt.Errorf("failed to count result: %w", err)
	}
	return nil
}

// Stats reads the counters.
func (s *Store) Stats(ctx context.Context) (models.Stats, error) {
	stats := models.Stats{ByScore: make(map[int]int)}

	counters, err := s.client.HGetAll(ctx, s.statsKey()).Result()
	if err != nil {
		return stats, fmt.Errorf("failed to read stats: %w", err)
	}

	for field, value := range counters {
		correct, err := strconv.Atoi(field)
		if err != nil {
			return stats, fmt.Errorf("bad stats field %q: %w", field, err)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return stats, fmt.Errorf("bad stats value %q: %w", value, err)
		}
		stats.ByScore[correct] = n
		stats.Total += n
	}
	return stats, nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
