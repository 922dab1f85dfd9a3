// Package service implements the notification center mailbox.
package service

import (
	"context"
	"fmt"

	"agentportal_backend/internal/events"
	"agentportal_backend/internal/notifications/repository"
	"agentportal_backend/platform/logger"

	"github.com/google/uuid"
)

// Notification types used by the event subscriptions.
const (
	TypeLevelUp     = "level_up"
	TypeAchievement = "achievement"
	TypeReminder    = "reminder"
)

type Service struct {
	repo *repository.Repository
	log  *logger.Logger
}

func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Notify inserts an unread notification into the agent's mailbox.
func (s *Service) Notify(_ context.Context, agentID uuid.UUID, nType, title, description string) repository.Notification {
	return s.repo.Add(agentID, nType, title, description)
}

// List returns the agent's notifications, newest first.
func (s *Service) List(_ context.Context, agentID uuid.UUID) []repository.Notification {
	return s.repo.List(agentID)
}

// MarkRead marks one notification as read. Unknown ids and repeats are
// no-ops; the UI retries these speculatively.
func (s *Service) MarkRead(_ context.Context, agentID, id uuid.UUID) {
	s.repo.MarkRead(agentID, id)
}

// MarkAllRead marks the whole mailbox as read.
func (s *Service) MarkAllRead(_ context.Context, agentID uuid.UUID) {
	s.repo.MarkAllRead(agentID)
}

// Clear removes a notification. Unknown ids are a no-op.
func (s *Service) Clear(_ context.Context, agentID, id uuid.UUID) {
	s.repo.Clear(agentID, id)
}

// UnreadCount returns the number of unread notifications.
func (s *Service) UnreadCount(_ context.Context, agentID uuid.UUID) int {
	return s.repo.UnreadCount(agentID)
}

// RegisterSubscriptions wires the mailbox to the domain events that feed it.
func (s *Service) RegisterSubscriptions(bus events.Bus) {
	bus.Subscribe(events.LevelUp{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		evt, ok := e.(events.LevelUp)
		if !ok {
			return nil
		}
		s.repo.Add(evt.AgentID, TypeLevelUp,
			fmt.Sprintf("Level %d reached!", evt.NewLevel),
			fmt.Sprintf("You advanced to level %d. Keep it going!", evt.NewLevel))
		return nil
	}))

	bus.Subscribe(events.AchievementUnlocked{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		evt, ok := e.(events.AchievementUnlocked)
		if !ok {
			return nil
		}
		s.repo.Add(evt.AgentID, TypeAchievement,
			"Achievement unlocked: "+evt.AchievementName,
			fmt.Sprintf("You earned %d XP for unlocking %s.", evt.XPReward, evt.AchievementName))
		return nil
	}))

	bus.Subscribe(events.ReminderDue{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		evt, ok := e.(events.ReminderDue)
		if !ok {
			return nil
		}
		title := "Reminder"
		if evt.LeadName != "" {
			title = "Reminder: " + evt.LeadName
		}
		s.repo.Add(evt.AgentID, TypeReminder, title, evt.Message)
		return nil
	}))
}
