package feed

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Collection is a locally held list of records keyed by id. Mutations are
// applied locally first so the screen updates at once, then sent to the
// server; if the server call fails the list is restored to what it was
// before the mutation. Mutations are meant to be issued one at a time.
type Collection[T any] struct {
	key func(T) int64

	mu    sync.Mutex
	items []T
}

// NewCollection creates a collection holding items, identified by key.
func NewCollection[T any](key func(T) int64, items []T) *Collection[T] {
	return &Collection[T]{key: key, items: slices.Clone(items)}
}

// Items returns a copy of the current list.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Set replaces the list, e.g. after a refetch.
func (c *Collection[T]) Set(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = slices.Clone(items)
}

func (c *Collection[T]) apply(fn func([]T) []T) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := slices.Clone(c.items)
	c.items = fn(c.items)
	return snapshot
}

func (c *Collection[T]) restore(snapshot []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = snapshot
}

func (c *Collection[T]) index(items []T, id int64) int {
	return slices.IndexFunc(items, func(v T) bool { return c.key(v) == id })
}

// Insert shows item at the top of the list, then calls create. On success
// the placeholder is swapped for the server's record.
func (c *Collection[T]) Insert(ctx context.Context, item T, create func(context.Context, T) (T, error)) (T, error) {
	placeholder := c.key(item)
	snapshot := c.apply(func(items []T) []T {
		return append([]T{item}, items...)
	})

	created, err := create(ctx, item)
	if err != nil {
		c.restore(snapshot)
		var zero T
		return zero, fmt.Errorf("insert: %w", err)
	}

	c.apply(func(items []T) []T {
		if i := c.index(items, placeholder); i >= 0 {
			items[i] = created
			return items
		}
		return append([]T{created}, items...)
	})
	return created, nil
}

// Replace swaps in the edited item, then calls update. On success the
// server's version is kept.
func (c *Collection[T]) Replace(ctx context.Context, item T, update func(context.Context, T) (T, error)) (T, error) {
	id := c.key(item)
	snapshot := c.apply(func(items []T) []T {
		if i := c.index(items, id); i >= 0 {
			items[i] = item
		}
		return items
	})

	updated, err := update(ctx, item)
	if err != nil {
		c.restore(snapshot)
		var zero T
		return zero, fmt.Errorf("replace %d: %w", id, err)
	}

	c.apply(func(items []T) []T {
		if i := c.index(items, id); i >= 0 {
			items[i] = updated
		}
		return items
	})
	return updated, nil
}

// Remove drops the record with id, then calls remove.
func (c *Collection[T]) Remove(ctx context.Context, id int64, remove func(context.Context, int64) error) error {
	snapshot := c.apply(func(items []T) []T {
		return slices.DeleteFunc(items, func(v T) bool { return c.key(v) == id })
	})

	if err := remove(ctx, id); err != nil {
		c.restore(snapshot)
		return fmt.Errorf("remove %d: %w", id, err)
	}
	return nil
}
