// Package repository provides in-memory storage for agent accounts.
package repository

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"agentportal_backend/platform/apperr"
)

// Agent is one portal account.
type Agent struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Repository stores agent accounts keyed by id with an email index.
type Repository struct {
	mu         sync.RWMutex
	agents     map[uuid.UUID]Agent
	emailIndex map[string]uuid.UUID
}

// New creates an empty agent repository.
func New() *Repository {
	return &Repository{
		agents:     make(map[uuid.UUID]Agent),
		emailIndex: make(map[string]uuid.UUID),
	}
}

// NormalizeEmail lowercases and trims an email for uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create registers a new agent. The normalized email must be unique.
func (r *Repository) Create(email, name, passwordHash string) (Agent, error) {
	norm := NormalizeEmail(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.emailIndex[norm]; exists {
		return Agent{}, apperr.Conflict("an account with this email already exists")
	}

	agent := Agent{
		ID:           uuid.New(),
		Email:        norm,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	r.agents[agent.ID] = agent
	r.emailIndex[norm] = agent.ID
	return agent, nil
}

// GetByEmail looks an agent up by normalized email.
func (r *Repository) GetByEmail(email string) (Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emailIndex[NormalizeEmail(email)]
	if !ok {
		return Agent{}, apperr.NotFound("agent not found")
	}
	return r.agents[id], nil
}

// Get looks an agent up by id.
func (r *Repository) Get(id uuid.UUID) (Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agent, ok := r.agents[id]
	if !ok {
		return Agent{}, apperr.NotFound("agent not found")
	}
	return agent, nil
}

// DisplayName returns the agent's name, or empty when unknown.
func (r *Repository) DisplayName(id uuid.UUID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.agents[id].Name
}
