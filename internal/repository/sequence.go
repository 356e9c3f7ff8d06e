package repository

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Sequence hands out increasing numbers per named counter, starting at 1.
type Sequence interface {
	Next(ctx context.Context, name string) (int64, error)
}

// MemorySequence keeps counters in process memory.
type MemorySequence struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewMemorySequence() *MemorySequence {
	return &MemorySequence{counters: make(map[string]int64)}
}

func (s *MemorySequence) Next(ctx context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name]++
	return s.counters[name], nil
}

type postgresSequence struct {
	pool *pgxpool.Pool
}

// NewPostgresSequence builds a sequence backed by the counters table.
func NewPostgresSequence(pool *pgxpool.Pool) Sequence {
	return &postgresSequence{pool: pool}
}

func (s *postgresSequence) Next(ctx context.Context, name string) (int64, error) {
	const query = `
        INSERT INTO counters (name, value) VALUES ($1, 1)
        ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
        RETURNING value`
	var value int64
	if err := s.pool.QueryRow(ctx, query, name).Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}

type redisSequence struct {
	client *redis.Client
}

// NewRedisSequence builds a sequence backed by Redis INCR on "seq:<name>" keys.
func NewRedisSequence(client *redis.Client) Sequence {
	return &redisSequence{client: client}
}

func (s *redisSequence) Next(ctx context.Context, name string) (int64, error) {
	return s.client.Incr(ctx, "seq:"+name).Result()
}
