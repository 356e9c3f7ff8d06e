package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

var _ Collection[struct{}] = (*MemoryCollection[struct{}])(nil)

// MemoryCollection keeps JSON documents in process memory, in insertion order.
type MemoryCollection[T any] struct {
	mu    sync.RWMutex
	name  string
	order []string
	docs  map[string]json.RawMessage
}

// NewMemoryCollection creates an empty collection.
func NewMemoryCollection[T any](name string) *MemoryCollection[T] {
	return &MemoryCollection[T]{
		name: name,
		docs: make(map[string]json.RawMessage),
	}
}

func (c *MemoryCollection[T]) Find(ctx context.Context, filter Filter) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids, err := c.matchLocked(filter)
	if err != nil {
		return nil, err
	}
	return c.decodeLocked(ids)
}

func (c *MemoryCollection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", c.name, id, err)
	}
	return &doc, nil
}

func (c *MemoryCollection[T]) FindByIDs(ctx context.Context, ids []string) ([]T, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	matched := make([]string, 0, len(wanted))
	for _, id := range c.order {
		if _, ok := wanted[id]; ok {
			matched = append(matched, id)
		}
	}
	return c.decodeLocked(matched)
}

func (c *MemoryCollection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	docs, err := c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return &docs[0], nil
}

func (c *MemoryCollection[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids, err := c.matchLocked(filter)
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

func (c *MemoryCollection[T]) Insert(ctx context.Context, id string, doc T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", c.name, id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.docs[id]; exists {
		return fmt.Errorf("insert %s/%s: duplicate id", c.name, id)
	}
	c.docs[id] = raw
	c.order = append(c.order, id)
	return nil
}

func (c *MemoryCollection[T]) UpdateMany(ctx context.Context, filter Filter, patch Patch) (int64, error) {
	normalized, err := normalize(patch)
	if err != nil {
		return 0, fmt.Errorf("encode patch: %w", err)
	}
	fields, _ := normalized.(map[string]any)

	c.mu.Lock()
	defer c.mu.Unlock()

	ids, err := c.matchLocked(filter)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		var doc map[string]any
		if err := json.Unmarshal(c.docs[id], &doc); err != nil {
			return 0, fmt.Errorf("decode %s/%s: %w", c.name, id, err)
		}
		for key, value := range fields {
			doc[key] = value
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return 0, fmt.Errorf("encode %s/%s: %w", c.name, id, err)
		}
		c.docs[id] = raw
	}
	return int64(len(ids)), nil
}

func (c *MemoryCollection[T]) DeleteByID(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return ErrNotFound
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *MemoryCollection[T]) matchLocked(filter Filter) ([]string, error) {
	if len(filter) == 0 {
		return append([]string(nil), c.order...), nil
	}
	frag, err := normalize(filter)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}
	var matched []string
	for _, id := range c.order {
		var doc any
		if err := json.Unmarshal(c.docs[id], &doc); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", c.name, id, err)
		}
		if contains(doc, frag) {
			matched = append(matched, id)
		}
	}
	return matched, nil
}

func (c *MemoryCollection[T]) decodeLocked(ids []string) ([]T, error) {
	result := make([]T, 0, len(ids))
	for _, id := range ids {
		var doc T
		if err := json.Unmarshal(c.docs[id], &doc); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", c.name, id, err)
		}
		result = append(result, doc)
	}
	return result, nil
}
