// Package service implements the lead registry and pipeline state machine.
package service

import (
	"context"
	"fmt"
	"time"

	"agentportal_backend/internal/events"
	"agentportal_backend/internal/leads/domain"
	"agentportal_backend/internal/leads/repository"
	"agentportal_backend/internal/scheduler"
	"agentportal_backend/platform/apperr"
	"agentportal_backend/platform/logger"
	"agentportal_backend/platform/validator"

	"github.com/google/uuid"
)

type Service struct {
	repo      *repository.Repository
	bus       events.Bus
	reminders scheduler.ReminderScheduler // nil when Redis is not configured
	val       *validator.Validator
	log       *logger.Logger
}

func New(repo *repository.Repository, bus events.Bus, reminders scheduler.ReminderScheduler, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		bus:       bus,
		reminders: reminders,
		val:       val,
		log:       log,
	}
}

// CreateLeadParams holds the contact fields for a new lead.
type CreateLeadParams struct {
	Name    string
	Email   string
	Phone   string
	State   string
	Product string
}

// CreateLead creates a lead in status "new". Creation is rejected with a
// conflict when the normalized email or phone collides with an existing
// lead in the agent's book.
func (s *Service) CreateLead(ctx context.Context, agentID uuid.UUID, p CreateLeadParams) (repository.Lead, error) {
	if p.Name == "" {
		return repository.Lead{}, apperr.Validation("name is required")
	}
	if p.Email == "" && p.Phone == "" {
		return repository.Lead{}, apperr.Validation("email or phone is required")
	}
	if p.Email != "" {
		if err := s.val.Var(p.Email, "email"); err != nil {
			return repository.Lead{}, apperr.Validation("invalid email address")
		}
	}

	lead, err := s.repo.Create(&repository.Lead{
		AgentID: agentID,
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		State:   p.State,
		Product: p.Product,
		Status:  domain.StatusNew,
	})
	if err != nil {
		return repository.Lead{}, err
	}

	if err := s.bus.PublishSync(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		AgentID:   agentID,
		LeadName:  lead.Name,
		Product:   lead.Product,
	}); err != nil {
		s.log.Error("lead created handlers failed", "error", err, "leadId", lead.ID)
	}

	return lead, nil
}

// GetLead returns a snapshot of one lead.
func (s *Service) GetLead(_ context.Context, agentID, leadID uuid.UUID) (repository.Lead, error) {
	return s.repo.Get(agentID, leadID)
}

// ListLeads returns snapshots of the agent's leads, newest first.
func (s *Service) ListLeads(_ context.Context, agentID uuid.UUID) []repository.Lead {
	return s.repo.List(agentID)
}

// UpdateStatus moves a lead to newStatus. The pipeline board allows free
// drag between any two columns, so every known status is reachable from
// every other, including reopening closed or lost leads. A same-status
// update is a no-op with no history entry.
func (s *Service) UpdateStatus(ctx context.Context, agentID, leadID uuid.UUID, newStatus string) (repository.Lead, error) {
	if !domain.IsKnownStatus(newStatus) {
		return repository.Lead{}, apperr.Validation(fmt.Sprintf("unknown status %q", newStatus))
	}

	oldStatus, changed, err := s.repo.SetStatus(agentID, leadID, newStatus)
	if err != nil {
		return repository.Lead{}, err
	}

	lead, err := s.repo.Get(agentID, leadID)
	if err != nil {
		return repository.Lead{}, err
	}

	if changed {
		if domain.IsTerminalStatus(oldStatus) && !domain.IsTerminalStatus(newStatus) {
			s.log.Info("lead reopened", "leadId", leadID, "from", oldStatus, "to", newStatus)
		}

		if err := s.bus.PublishSync(ctx, events.LeadStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    leadID,
			AgentID:   agentID,
			LeadName:  lead.Name,
			OldStatus: oldStatus,
			NewStatus: newStatus,
		}); err != nil {
			s.log.Error("status change handlers failed", "error", err, "leadId", leadID)
		}
	}

	return lead, nil
}

// AddActivityParams describes a logged touchpoint.
type AddActivityParams struct {
	Type        string
	Disposition string
	Notes       string
}

// AddActivity appends an immutable activity log entry. The lead's status is
// not altered.
func (s *Service) AddActivity(ctx context.Context, agentID, leadID uuid.UUID, p AddActivityParams) (repository.ActivityLog, error) {
	if !domain.IsKnownActivityType(p.Type) {
		return repository.ActivityLog{}, apperr.Validation(fmt.Sprintf("unknown activity type %q", p.Type))
	}

	entry, err := s.repo.AddActivity(agentID, leadID, repository.ActivityLog{
		Type:        p.Type,
		Disposition: p.Disposition,
		Notes:       p.Notes,
	})
	if err != nil {
		return repository.ActivityLog{}, err
	}

	if err := s.bus.PublishSync(ctx, events.ActivityLogged{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       leadID,
		AgentID:      agentID,
		ActivityID:   entry.ID,
		ActivityType: entry.Type,
	}); err != nil {
		s.log.Error("activity logged handlers failed", "error", err, "leadId", leadID)
	}

	return entry, nil
}

// AddTag adds a tag with set semantics.
func (s *Service) AddTag(_ context.Context, agentID, leadID uuid.UUID, tag string) error {
	if tag == "" {
		return apperr.Validation("tag is required")
	}
	return s.repo.AddTag(agentID, leadID, tag)
}

// RemoveTag removes a tag; removing an absent tag is a no-op.
func (s *Service) RemoveTag(_ context.Context, agentID, leadID uuid.UUID, tag string) error {
	return s.repo.RemoveTag(agentID, leadID, tag)
}

// AddReminderParams describes a dated follow-up.
type AddReminderParams struct {
	Date    string // YYYY-MM-DD
	Time    string // HH:MM
	Message string
}

// AddReminder attaches a reminder to the lead and, when the scheduler is
// configured and the due time is in the future, enqueues its due-time task.
func (s *Service) AddReminder(ctx context.Context, agentID, leadID uuid.UUID, p AddReminderParams) (repository.Reminder, error) {
	runAt, err := parseReminderTime(p.Date, p.Time)
	if err != nil {
		return repository.Reminder{}, apperr.Validation("invalid reminder date or time")
	}
	if p.Message == "" {
		return repository.Reminder{}, apperr.Validation("message is required")
	}

	rem, err := s.repo.AddReminder(agentID, leadID, repository.Reminder{
		Date:    p.Date,
		Time:    p.Time,
		Message: p.Message,
	})
	if err != nil {
		return repository.Reminder{}, err
	}

	if s.reminders != nil && runAt.After(time.Now()) {
		lead, getErr := s.repo.Get(agentID, leadID)
		if getErr == nil {
			if schedErr := s.reminders.ScheduleLeadReminder(ctx, scheduler.LeadReminderPayload{
				LeadID:     leadID.String(),
				AgentID:    agentID.String(),
				ReminderID: rem.ID.String(),
				LeadName:   lead.Name,
				Message:    rem.Message,
			}, runAt); schedErr != nil {
				s.log.Error("failed to schedule reminder", "error", schedErr, "reminderId", rem.ID)
			}
		}
	}

	return rem, nil
}

// CompleteReminder marks a reminder completed. Unknown lead or reminder ids
// are swallowed as no-ops so the UI can issue speculative retries.
func (s *Service) CompleteReminder(_ context.Context, agentID, leadID, reminderID uuid.UUID) error {
	if err := s.repo.CompleteReminder(agentID, leadID, reminderID); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func parseReminderTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
}
