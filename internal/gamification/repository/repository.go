// Package repository provides in-memory storage for per-agent gamification
// state. All domain state lives for the lifetime of the process.
package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Performance is the raw per-agent progression record. Level is derived by
// the service from XP and is not stored here.
type Performance struct {
	AgentID          uuid.UUID `json:"agentId"`
	XP               int       `json:"xp"`
	CurrentStreak    int       `json:"currentStreak"`
	LongestStreak    int       `json:"longestStreak"`
	LastActivityDate time.Time `json:"lastActivityDate"`
}

// Stats holds the aggregate counters achievement predicates read.
type Stats struct {
	CallsLogged        int `json:"callsLogged"`
	TasksCompleted     int `json:"tasksCompleted"`
	LeadsCreated       int `json:"leadsCreated"`
	LeadsClosed        int `json:"leadsClosed"`
	TrainingsCompleted int `json:"trainingsCompleted"`
}

// Toast is the single-slot pending XP popup. A new grant before the previous
// toast is consumed overwrites it.
type Toast struct {
	Amount  int       `json:"amount"`
	Reason  string    `json:"reason"`
	TotalXP int       `json:"totalXp"`
	At      time.Time `json:"at"`
}

type agentState struct {
	perf     Performance
	stats    Stats
	unlocked map[string]time.Time
	toast    *Toast
}

// Repository stores gamification state for all agents.
type Repository struct {
	mu     sync.RWMutex
	agents map[uuid.UUID]*agentState
}

// New creates an empty gamification repository.
func New() *Repository {
	return &Repository{agents: make(map[uuid.UUID]*agentState)}
}

func (r *Repository) state(agentID uuid.UUID) *agentState {
	st, ok := r.agents[agentID]
	if !ok {
		st = &agentState{
			perf:     Performance{AgentID: agentID},
			unlocked: make(map[string]time.Time),
		}
		r.agents[agentID] = st
	}
	return st
}

// AddXP applies a non-negative delta and returns the new total.
// Validation of the delta happens in the service.
func (r *Repository) AddXP(agentID uuid.UUID, amount int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.state(agentID)
	st.perf.XP += amount
	return st.perf.XP
}

// Performance returns a snapshot of the agent's progression record.
func (r *Repository) Performance(agentID uuid.UUID) Performance {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state(agentID).perf
}

// RecordActivity applies the streak transition for a qualifying activity on
// the given calendar day (UTC). Same-day repeats are no-ops; the day after
// the last activity extends the streak; anything else resets it to 1.
func (r *Repository) RecordActivity(agentID uuid.UUID, day time.Time) Performance {
	day = ToCalendarDay(day)

	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.state(agentID)
	last := st.perf.LastActivityDate

	switch {
	case !last.IsZero() && day.Equal(last):
		return st.perf
	case !last.IsZero() && day.Equal(last.AddDate(0, 0, 1)):
		st.perf.CurrentStreak++
	default:
		st.perf.CurrentStreak = 1
	}

	if st.perf.CurrentStreak > st.perf.LongestStreak {
		st.perf.LongestStreak = st.perf.CurrentStreak
	}
	st.perf.LastActivityDate = day
	return st.perf
}

// ToCalendarDay truncates t to its UTC calendar day.
func ToCalendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IncCallsLogged bumps the calls counter.
func (r *Repository) IncCallsLogged(agentID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state(agentID).stats.CallsLogged++
}

// IncTasksCompleted bumps the completed-tasks counter.
func (r *Repository) IncTasksCompleted(agentID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state(agentID).stats.TasksCompleted++
}

// IncLeadsCreated bumps the created-leads counter.
func (r *Repository) IncLeadsCreated(agentID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state(agentID).stats.LeadsCreated++
}

// IncLeadsClosed bumps the closed-deals counter.
func (r *Repository) IncLeadsClosed(agentID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state(agentID).stats.LeadsClosed++
}

// IncTrainingsCompleted bumps the trainings counter.
func (r *Repository) IncTrainingsCompleted(agentID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state(agentID).stats.TrainingsCompleted++
}

// Stats returns a snapshot of the agent's counters.
func (r *Repository) Stats(agentID uuid.UUID) Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state(agentID).stats
}

// MarkUnlocked records an achievement unlock. Returns false if the
// achievement was already unlocked, so rewards are granted at most once.
func (r *Repository) MarkUnlocked(agentID uuid.UUID, achievementID string, at time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.state(agentID)
	if _, ok := st.unlocked[achievementID]; ok {
		return false
	}
	st.unlocked[achievementID] = at
	return true
}

// UnlockedAt returns the unlock time for an achievement, if unlocked.
func (r *Repository) UnlockedAt(agentID uuid.UUID, achievementID string) (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.agents[agentID]
	if !ok {
		return time.Time{}, false
	}
	at, ok := st.unlocked[achievementID]
	return at, ok
}

// SetToast overwrites the single pending XP toast (latest wins).
func (r *Repository) SetToast(agentID uuid.UUID, toast Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := toast
	r.state(agentID).toast = &t
}

// ConsumeToast clears and returns the pending toast, if any.
func (r *Repository) ConsumeToast(agentID uuid.UUID) (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.state(agentID)
	if st.toast == nil {
		return Toast{}, false
	}
	t := *st.toast
	st.toast = nil
	return t, true
}
