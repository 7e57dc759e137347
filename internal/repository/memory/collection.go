// Package memory provides thread-safe in-memory repositories. They back the
// "memory" store driver and the end-to-end pipeline tests.
package memory

import (
	"sync"

	"hotelapi/internal/repository"
)

// collection is a generic insertion-ordered map guarded by a RWMutex.
// clone is applied on the way in and out so callers never share slices with the store.
type collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	clone func(T) T
}

func newCollection[T any](clone func(T) T) *collection[T] {
	return &collection[T]{
		items: make(map[string]T),
		clone: clone,
	}
}

// insert adds a new item. It reports false if the ID is taken.
func (c *collection[T]) insert(id string, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[id]; exists {
		return false
	}
	c.items[id] = c.clone(item)
	c.order = append(c.order, id)
	return true
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	if !ok {
		return item, false
	}
	return c.clone(item), true
}

// replace overwrites an existing item, keeping its position.
func (c *collection[T]) replace(id string, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[id]; !exists {
		return false
	}
	c.items[id] = c.clone(item)
	return true
}

func (c *collection[T]) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[id]; !exists {
		return false
	}
	delete(c.items, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// find returns the first item matching pred.
func (c *collection[T]) find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, id := range c.order {
		if item := c.items[id]; pred(item) {
			return c.clone(item), true
		}
	}
	var zero T
	return zero, false
}

// page returns matching items newest first, sliced by pq, plus the match count.
func (c *collection[T]) page(pred func(T) bool, pq repository.PageQuery) *repository.PageResult[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	matched := make([]T, 0, len(c.order))
	for i := len(c.order) - 1; i >= 0; i-- {
		if item := c.items[c.order[i]]; pred == nil || pred(item) {
			matched = append(matched, item)
		}
	}

	start := min(max(pq.Offset, 0), len(matched))
	end := len(matched)
	if pq.Limit > 0 {
		end = min(start+pq.Limit, len(matched))
	}

	items := make([]T, 0, end-start)
	for _, item := range matched[start:end] {
		items = append(items, c.clone(item))
	}
	return &repository.PageResult[T]{Items: items, Total: len(matched)}
}

func (c *collection[T]) count(pred func(T) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, item := range c.items {
		if pred(item) {
			n++
		}
	}
	return n
}
