// Package repository provides in-memory storage for agent tasks.
package repository

import (
	"sort"
	"sync"
	"time"

	"agentportal_backend/platform/apperr"

	"github.com/google/uuid"
)

const errTaskNotFound = "task not found"

// Task is a to-do item whose completion feeds the gamification engine.
type Task struct {
	ID                uuid.UUID `json:"id"`
	AgentID           uuid.UUID `json:"agentId"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	DueDate           string    `json:"dueDate"` // YYYY-MM-DD
	PerformanceImpact int       `json:"performanceImpact"`
	Completed         bool      `json:"completed"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Repository stores tasks in memory per agent.
type Repository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*Task
}

// New creates an empty in-memory task repository.
func New() *Repository {
	return &Repository{tasks: make(map[uuid.UUID]*Task)}
}

// Add inserts a new task with completed=false.
func (r *Repository) Add(task Task) Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	task.ID = uuid.New()
	task.Completed = false
	task.CreatedAt = time.Now()
	r.tasks[task.ID] = &task
	return task
}

// Get returns a snapshot of one task scoped to the owning agent.
func (r *Repository) Get(agentID, id uuid.UUID) (Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task := r.tasks[id]
	if task == nil || task.AgentID != agentID {
		return Task{}, apperr.NotFound(errTaskNotFound)
	}
	return *task, nil
}

// List returns snapshots of the agent's tasks, newest first.
func (r *Repository) List(agentID uuid.UUID) []Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Task, 0)
	for _, task := range r.tasks {
		if task.AgentID == agentID {
			out = append(out, *task)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// SetCompleted sets the completion flag and reports whether this call was
// the false-to-true edge. Setting the current value again is a no-op, which
// keeps double-calls from double-awarding.
func (r *Repository) SetCompleted(agentID, id uuid.UUID, completed bool) (Task, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task := r.tasks[id]
	if task == nil || task.AgentID != agentID {
		return Task{}, false, apperr.NotFound(errTaskNotFound)
	}

	awardEdge := !task.Completed && completed
	task.Completed = completed
	return *task, awardEdge, nil
}
