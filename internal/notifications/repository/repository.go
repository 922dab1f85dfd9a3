// Package repository provides the in-memory per-agent notification mailbox.
package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification is one user-facing alert. The read flag only moves forward;
// removal happens through Clear.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	AgentID     uuid.UUID `json:"agentId"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Read        bool      `json:"read"`
}

// Repository stores notifications per agent.
type Repository struct {
	mu        sync.RWMutex
	mailboxes map[uuid.UUID]map[uuid.UUID]Notification
}

// New creates an empty notification repository.
func New() *Repository {
	return &Repository{mailboxes: make(map[uuid.UUID]map[uuid.UUID]Notification)}
}

// Add inserts a notification with read=false and a fresh id.
func (r *Repository) Add(agentID uuid.UUID, nType, title, description string) Notification {
	n := Notification{
		ID:          uuid.New(),
		AgentID:     agentID,
		Type:        nType,
		Title:       title,
		Description: description,
		Timestamp:   time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	box, ok := r.mailboxes[agentID]
	if !ok {
		box = make(map[uuid.UUID]Notification)
		r.mailboxes[agentID] = box
	}
	box[n.ID] = n
	return n
}

// List returns the agent's notifications, newest first.
func (r *Repository) List(agentID uuid.UUID) []Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	box := r.mailboxes[agentID]
	out := make([]Notification, 0, len(box))
	for _, n := range box {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out
}

// MarkRead flips one notification to read. Forward-only; marking an already
// read or unknown notification is a no-op.
func (r *Repository) MarkRead(agentID, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	box := r.mailboxes[agentID]
	n, ok := box[id]
	if !ok || n.Read {
		return
	}
	n.Read = true
	box[id] = n
}

// MarkAllRead flips every notification in the mailbox to read.
func (r *Repository) MarkAllRead(agentID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, n := range r.mailboxes[agentID] {
		if !n.Read {
			n.Read = true
			r.mailboxes[agentID][id] = n
		}
	}
}

// Clear removes a notification entirely. Unknown ids are a no-op.
func (r *Repository) Clear(agentID, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.mailboxes[agentID], id)
}

// UnreadCount returns the number of unread notifications in the mailbox.
func (r *Repository) UnreadCount(agentID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.mailboxes[agentID] {
		if !n.Read {
			count++
		}
	}
	return count
}
