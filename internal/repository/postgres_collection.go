package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Collection[struct{}] = (*PostgresCollection[struct{}])(nil)

// PostgresCollection stores documents as JSONB rows of the shared documents table.
type PostgresCollection[T any] struct {
	pool *pgxpool.Pool
	name string
}

// NewPostgresCollection builds a collection scoped to name.
func NewPostgresCollection[T any](pool *pgxpool.Pool, name string) *PostgresCollection[T] {
	return &PostgresCollection[T]{pool: pool, name: name}
}

func (c *PostgresCollection[T]) Find(ctx context.Context, filter Filter) ([]T, error) {
	frag, err := encodeFragment(filter)
	if err != nil {
		return nil, err
	}
	const query = `
        SELECT doc FROM documents
        WHERE collection=$1 AND doc @> $2::jsonb
        ORDER BY seq`
	rows, err := c.pool.Query(ctx, query, c.name, frag)
	if err != nil {
		return nil, err
	}
	return c.scan(rows)
}

func (c *PostgresCollection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	const query = `SELECT doc FROM documents WHERE collection=$1 AND id=$2`
	var raw []byte
	if err := c.pool.QueryRow(ctx, query, c.name, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", c.name, id, err)
	}
	return &doc, nil
}

func (c *PostgresCollection[T]) FindByIDs(ctx context.Context, ids []string) ([]T, error) {
	const query = `
        SELECT doc FROM documents
        WHERE collection=$1 AND id = ANY($2)
        ORDER BY seq`
	rows, err := c.pool.Query(ctx, query, c.name, ids)
	if err != nil {
		return nil, err
	}
	return c.scan(rows)
}

func (c *PostgresCollection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	frag, err := encodeFragment(filter)
	if err != nil {
		return nil, err
	}
	const query = `
        SELECT doc FROM documents
        WHERE collection=$1 AND doc @> $2::jsonb
        ORDER BY seq LIMIT 1`
	var raw []byte
	if err := c.pool.QueryRow(ctx, query, c.name, frag).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return &doc, nil
}

func (c *PostgresCollection[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	frag, err := encodeFragment(filter)
	if err != nil {
		return 0, err
	}
	const query = `SELECT COUNT(*) FROM documents WHERE collection=$1 AND doc @> $2::jsonb`
	var count int64
	if err := c.pool.QueryRow(ctx, query, c.name, frag).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *PostgresCollection[T]) Insert(ctx context.Context, id string, doc T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", c.name, id, err)
	}
	const query = `
        INSERT INTO documents (collection, id, doc)
        VALUES ($1,$2,$3::jsonb)`
	_, err = c.pool.Exec(ctx, query, c.name, id, string(raw))
	return err
}

func (c *PostgresCollection[T]) UpdateMany(ctx context.Context, filter Filter, patch Patch) (int64, error) {
	frag, err := encodeFragment(filter)
	if err != nil {
		return 0, err
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return 0, fmt.Errorf("encode patch: %w", err)
	}
	const query = `
        UPDATE documents SET doc = doc || $3::jsonb, updated_at=NOW()
        WHERE collection=$1 AND doc @> $2::jsonb`
	cmd, err := c.pool.Exec(ctx, query, c.name, frag, string(raw))
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (c *PostgresCollection[T]) DeleteByID(ctx context.Context, id string) error {
	const query = `DELETE FROM documents WHERE collection=$1 AND id=$2`
	cmd, err := c.pool.Exec(ctx, query, c.name, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *PostgresCollection[T]) scan(rows pgx.Rows) ([]T, error) {
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.name, err)
		}
		result = append(result, doc)
	}
	return result, rows.Err()
}

func encodeFragment(filter Filter) (string, error) {
	if len(filter) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(filter)
	if err != nil {
		return "", fmt.Errorf("encode filter: %w", err)
	}
	return string(raw), nil
}
