// Package repository provides in-memory storage for the leads bounded context.
// State lives for the session; a durable implementation can be substituted
// behind the same method signatures.
package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"agentportal_backend/platform/apperr"
	"agentportal_backend/platform/phone"

	"github.com/google/uuid"
)

const (
	opCreate           = "leads.repository.create"
	opGet              = "leads.repository.get"
	opSetStatus        = "leads.repository.set_status"
	opAddActivity      = "leads.repository.add_activity"
	opAddReminder      = "leads.repository.add_reminder"
	opCompleteReminder = "leads.repository.complete_reminder"

	errLeadNotFound = "lead not found"
)

// ActivityLog is a call/text/email/meeting/note event attached to a lead.
// Immutable once created.
type ActivityLog struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Disposition string    `json:"disposition,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Reminder is a dated follow-up on a lead. Completion is one-way and
// idempotent.
type Reminder struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM
	Message   string    `json:"message"`
	Completed bool      `json:"completed"`
}

// StatusChange is one append-only pipeline history entry.
type StatusChange struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// Lead is the full lead record owned by a single agent.
type Lead struct {
	ID            uuid.UUID      `json:"id"`
	AgentID       uuid.UUID      `json:"agentId"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	State         string         `json:"state"`
	Product       string         `json:"product"`
	Status        string         `json:"status"`
	Tags          []string       `json:"tags"`
	Notes         []ActivityLog  `json:"notes"`
	Reminders     []Reminder     `json:"reminders"`
	StatusHistory []StatusChange `json:"statusHistory"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// NormalizeEmail lowercases and trims an email address for duplicate checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Repository stores leads in memory, indexed per agent by normalized email
// and phone for duplicate rejection.
type Repository struct {
	mu         sync.RWMutex
	leads      map[uuid.UUID]*Lead
	emailIndex map[uuid.UUID]map[string]uuid.UUID // agent -> normalized email -> lead
	phoneIndex map[uuid.UUID]map[string]uuid.UUID // agent -> normalized phone -> lead
}

// New creates an empty in-memory lead repository.
func New() *Repository {
	return &Repository{
		leads:      make(map[uuid.UUID]*Lead),
		emailIndex: make(map[uuid.UUID]map[string]uuid.UUID),
		phoneIndex: make(map[uuid.UUID]map[string]uuid.UUID),
	}
}

// Create inserts a new lead after duplicate checks on normalized email and
// phone within the owning agent's book.
func (r *Repository) Create(lead *Lead) (Lead, error) {
	if lead == nil || lead.AgentID == uuid.Nil {
		return Lead{}, apperr.Validation("agentId is required").WithOp(opCreate)
	}

	email := NormalizeEmail(lead.Email)
	phoneKey := phone.NormalizeE164(lead.Phone)

	r.mu.Lock()
	defer r.mu.Unlock()

	if email != "" {
		if _, exists := r.emailIndex[lead.AgentID][email]; exists {
			return Lead{}, apperr.Conflict("a lead with this email already exists").WithOp(opCreate)
		}
	}
	if phoneKey != "" {
		if _, exists := r.phoneIndex[lead.AgentID][phoneKey]; exists {
			return Lead{}, apperr.Conflict("a lead with this phone number already exists").WithOp(opCreate)
		}
	}

	stored := *lead
	stored.ID = uuid.New()
	stored.Tags = []string{}
	stored.Notes = []ActivityLog{}
	stored.Reminders = []Reminder{}
	stored.StatusHistory = []StatusChange{}
	stored.CreatedAt = time.Now()

	r.leads[stored.ID] = &stored
	if email != "" {
		if r.emailIndex[stored.AgentID] == nil {
			r.emailIndex[stored.AgentID] = make(map[string]uuid.UUID)
		}
		r.emailIndex[stored.AgentID][email] = stored.ID
	}
	if phoneKey != "" {
		if r.phoneIndex[stored.AgentID] == nil {
			r.phoneIndex[stored.AgentID] = make(map[string]uuid.UUID)
		}
		r.phoneIndex[stored.AgentID][phoneKey] = stored.ID
	}

	return cloneLead(&stored), nil
}

// Get returns a snapshot of the lead, scoped to the owning agent.
func (r *Repository) Get(agentID, id uuid.UUID) (Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead := r.leads[id]
	if lead == nil || lead.AgentID != agentID {
		return Lead{}, apperr.NotFound(errLeadNotFound).WithOp(opGet)
	}
	return cloneLead(lead), nil
}

// List returns snapshots of the agent's leads, newest first.
func (r *Repository) List(agentID uuid.UUID) []Lead {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Lead, 0)
	for _, lead := range r.leads {
		if lead.AgentID == agentID {
			out = append(out, cloneLead(lead))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// SetStatus moves the lead to newStatus. A same-status update is a no-op
// that appends no history entry; any real change appends exactly one.
func (r *Repository) SetStatus(agentID, id uuid.UUID, newStatus string) (oldStatus string, changed bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead := r.leads[id]
	if lead == nil || lead.AgentID != agentID {
		return "", false, apperr.NotFound(errLeadNotFound).WithOp(opSetStatus)
	}

	oldStatus = lead.Status
	if oldStatus == newStatus {
		return oldStatus, false, nil
	}

	lead.StatusHistory = append(lead.StatusHistory, StatusChange{
		From:      oldStatus,
		To:        newStatus,
		Timestamp: time.Now(),
	})
	lead.Status = newStatus
	return oldStatus, true, nil
}

// AddActivity appends an immutable activity log entry with a fresh id and
// timestamp. The lead's status is untouched.
func (r *Repository) AddActivity(agentID, leadID uuid.UUID, entry ActivityLog) (ActivityLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead := r.leads[leadID]
	if lead == nil || lead.AgentID != agentID {
		return ActivityLog{}, apperr.NotFound(errLeadNotFound).WithOp(opAddActivity)
	}

	entry.ID = uuid.New()
	entry.Timestamp = time.Now()
	lead.Notes = append(lead.Notes, entry)
	return entry, nil
}

// AddTag adds a tag with set semantics; adding an existing tag is a no-op.
func (r *Repository) AddTag(agentID, leadID uuid.UUID, tag string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead := r.leads[leadID]
	if lead == nil || lead.AgentID != agentID {
		return apperr.NotFound(errLeadNotFound)
	}

	for _, existing := range lead.Tags {
		if existing == tag {
			return nil
		}
	}
	lead.Tags = append(lead.Tags, tag)
	return nil
}

// RemoveTag removes a tag; removing an absent tag is a no-op.
func (r *Repository) RemoveTag(agentID, leadID uuid.UUID, tag string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead := r.leads[leadID]
	if lead == nil || lead.AgentID != agentID {
		return apperr.NotFound(errLeadNotFound)
	}

	for i, existing := range lead.Tags {
		if existing == tag {
			lead.Tags = append(lead.Tags[:i], lead.Tags[i+1:]...)
			return nil
		}
	}
	return nil
}

// AddReminder appends a reminder with a fresh id, completed=false.
func (r *Repository) AddReminder(agentID, leadID uuid.UUID, rem Reminder) (Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead := r.leads[leadID]
	if lead == nil || lead.AgentID != agentID {
		return Reminder{}, apperr.NotFound(errLeadNotFound).WithOp(opAddReminder)
	}

	rem.ID = uuid.New()
	rem.Completed = false
	lead.Reminders = append(lead.Reminders, rem)
	return rem, nil
}

// CompleteReminder marks a reminder completed. Completing an already
// completed or unknown reminder is a no-op, so the UI can retry freely.
func (r *Repository) CompleteReminder(agentID, leadID, reminderID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead := r.leads[leadID]
	if lead == nil || lead.AgentID != agentID {
		return apperr.NotFound(errLeadNotFound).WithOp(opCompleteReminder)
	}

	for i := range lead.Reminders {
		if lead.Reminders[i].ID == reminderID {
			lead.Reminders[i].Completed = true
			return nil
		}
	}
	return nil
}

func cloneLead(lead *Lead) Lead {
	out := *lead
	out.Tags = append([]string(nil), lead.Tags...)
	out.Notes = append([]ActivityLog(nil), lead.Notes...)
	out.Reminders = append([]Reminder(nil), lead.Reminders...)
	out.StatusHistory = append([]StatusChange(nil), lead.StatusHistory...)
	return out
}
