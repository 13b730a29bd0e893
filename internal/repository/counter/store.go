package counter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/nodeglobe/internal/db"
	"github.com/kailas-cloud/nodeglobe/internal/domain"
)

// DefaultTTL keeps a daily key one day past its own day.
const DefaultTTL = 48 * time.Hour

// store is the consumer interface for counter operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store counts evaluated queries per UTC day (INCRBY + GET with TTL).
type Store struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a daily query counter. A non-positive ttl uses DefaultTTL.
func New(s store, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{store: s, prefix: prefix, ttl: ttl}
}

// Key returns the counter key for the UTC day containing day.
func (s *Store) Key(day time.Time) string {
	return s.prefix + "queries:daily:" + day.UTC().Format(time.DateOnly)
}

// Incr atomically increments the day's counter and sets its TTL once.
func (s *Store) Incr(ctx context.Context, day time.Time) error {
	key := s.Key(day)
	if err := s.store.IncrBy(ctx, key, 1); err != nil {
		return fmt.Errorf("counter INCRBY %s: %w", key, err)
	}

	// NX: the first increment of the day fixes the expiry.
	if err := s.store.Expire(ctx, key, s.ttl, true); err != nil {
		return fmt.Errorf("counter EXPIRE %s: %w", key, err)
	}
	return nil
}

// Get returns the day's count. Returns 0 if the key does not exist.
func (s *Store) Get(ctx context.Context, day time.Time) (int64, error) {
	key := s.Key(day)
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("counter GET %s: %w", key, err)
	}

	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("counter GET %s parse: %w", key, err)
	}
	return val, nil
}
