// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"agentportal_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead passes duplicate checks.
type LeadCreated struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	AgentID  uuid.UUID `json:"agentId"`
	LeadName string    `json:"leadName"`
	Product  string    `json:"product"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStatusChanged is published for every real pipeline transition.
// Same-status updates produce no event and no history entry.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	AgentID   uuid.UUID `json:"agentId"`
	LeadName  string    `json:"leadName"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }

// ActivityLogged is published when a call/text/email/meeting/note is logged
// against a lead. Streak-qualifying for the gamification engine.
type ActivityLogged struct {
	BaseEvent
	LeadID       uuid.UUID `json:"leadId"`
	AgentID      uuid.UUID `json:"agentId"`
	ActivityID   uuid.UUID `json:"activityId"`
	ActivityType string    `json:"activityType"`
}

func (e ActivityLogged) EventName() string { return "leads.activity.logged" }

// ReminderDue is published by the scheduler worker when a lead reminder's
// date and time arrive.
type ReminderDue struct {
	BaseEvent
	LeadID     uuid.UUID `json:"leadId"`
	AgentID    uuid.UUID `json:"agentId"`
	ReminderID uuid.UUID `json:"reminderId"`
	LeadName   string    `json:"leadName"`
	Message    string    `json:"message"`
}

func (e ReminderDue) EventName() string { return "leads.reminder.due" }

// =============================================================================
// Tasks Domain Events
// =============================================================================

// TaskCompleted is published only on the false-to-true completion edge.
// Undo (true-to-false) publishes nothing; rewards are never clawed back.
type TaskCompleted struct {
	BaseEvent
	TaskID            uuid.UUID `json:"taskId"`
	AgentID           uuid.UUID `json:"agentId"`
	Title             string    `json:"title"`
	PerformanceImpact int       `json:"performanceImpact"`
}

func (e TaskCompleted) EventName() string { return "tasks.task.completed" }

// =============================================================================
// Gamification Domain Events
// =============================================================================

// XPAwarded is published for every accepted XP grant, including level-up
// bonuses and achievement rewards.
type XPAwarded struct {
	BaseEvent
	AgentID uuid.UUID `json:"agentId"`
	Amount  int       `json:"amount"`
	Reason  string    `json:"reason"`
	TotalXP int       `json:"totalXp"`
}

func (e XPAwarded) EventName() string { return "gamification.xp.awarded" }

// LevelUp is published when accumulated XP crosses a level boundary.
// The level-up bonus has already been applied when this event fires.
type LevelUp struct {
	BaseEvent
	AgentID   uuid.UUID `json:"agentId"`
	AgentName string    `json:"agentName"`
	NewLevel  int       `json:"newLevel"`
}

func (e LevelUp) EventName() string { return "gamification.level.up" }

// AchievementUnlocked is published at most once per achievement per agent.
type AchievementUnlocked struct {
	BaseEvent
	AgentID         uuid.UUID `json:"agentId"`
	AgentName       string    `json:"agentName"`
	AchievementID   string    `json:"achievementId"`
	AchievementName string    `json:"achievementName"`
	XPReward        int       `json:"xpReward"`
}

func (e AchievementUnlocked) EventName() string { return "gamification.achievement.unlocked" }
