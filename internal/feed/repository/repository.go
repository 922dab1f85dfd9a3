// Package repository provides the bounded in-memory activity feed store.
package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Item is one feed entry. IsNew is a transient highlight flag cleared
// shortly after publication.
type Item struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	AgentName string    `json:"agentName,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsNew     bool      `json:"isNew"`
}

// Repository keeps the newest items up to a fixed capacity. Prepending past
// the capacity drops the oldest item.
type Repository struct {
	mu       sync.RWMutex
	items    []Item
	capacity int
}

// New creates a feed store holding at most capacity items.
func New(capacity int) *Repository {
	return &Repository{capacity: capacity}
}

// Prepend inserts the item at the front, evicting the oldest when full.
func (r *Repository) Prepend(item Item) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append([]Item{item}, r.items...)
	if len(r.items) > r.capacity {
		r.items = r.items[:r.capacity]
	}
}

// List returns a snapshot of the feed, newest first.
func (r *Repository) List() []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// ClearNew drops the highlight flag on one item. The item may already have
// been evicted; that is a no-op.
func (r *Repository) ClearNew(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].IsNew = false
			return
		}
	}
}
