// Package service implements the gamification engine: the XP ledger,
// leveling, streak tracking, and achievement unlocking.
package service

import (
	"context"
	"time"

	"agentportal_backend/internal/events"
	"agentportal_backend/internal/gamification/repository"
	"agentportal_backend/internal/gamification/rules"
	leadsdomain "agentportal_backend/internal/leads/domain"
	"agentportal_backend/platform/apperr"
	"agentportal_backend/platform/logger"

	"github.com/google/uuid"
)

// AgentDirectory resolves display names for events that carry them.
// It may be nil, in which case names are left empty.
type AgentDirectory interface {
	DisplayName(agentID uuid.UUID) string
}

type Service struct {
	repo      *repository.Repository
	rules     rules.Rules
	bus       events.Bus
	directory AgentDirectory
	log       *logger.Logger
}

func New(repo *repository.Repository, r rules.Rules, bus events.Bus, directory AgentDirectory, log *logger.Logger) *Service {
	return &Service{repo: repo, rules: r, bus: bus, directory: directory, log: log}
}

// PerformanceView is the progression snapshot served to callers. Level is
// always derived from XP, never stored.
type PerformanceView struct {
	AgentID          uuid.UUID `json:"agentId"`
	XP               int       `json:"xp"`
	Level            int       `json:"level"`
	CurrentStreak    int       `json:"currentStreak"`
	LongestStreak    int       `json:"longestStreak"`
	LastActivityDate string    `json:"lastActivityDate,omitempty"`
}

// StatsView is the aggregate stat surface achievement predicates read.
type StatsView struct {
	repository.Stats
	CurrentStreak int `json:"currentStreak"`
	TotalXP       int `json:"totalXp"`
}

// AchievementView joins an achievement definition with its unlock state.
type AchievementView struct {
	rules.Achievement
	Unlocked   bool   `json:"unlocked"`
	UnlockedAt string `json:"unlockedAt,omitempty"`
}

const dateLayout = "2006-01-02"

func (s *Service) level(xp int) int {
	return xp/s.rules.LevelStep + 1
}

// AddXP applies a non-negative XP delta. Crossing a level boundary publishes
// LevelUp and grants the configured bonus in the same call; the bonus can
// cross a further boundary, so the check repeats until the level settles.
// Each call overwrites the single pending XP toast.
func (s *Service) AddXP(ctx context.Context, agentID uuid.UUID, amount int, reason string) (PerformanceView, error) {
	if amount < 0 {
		return PerformanceView{}, apperr.Validation("XP amount cannot be negative")
	}

	levelBefore := s.level(s.repo.Performance(agentID).XP)
	total := s.repo.AddXP(agentID, amount)
	s.publishXPAwarded(ctx, agentID, amount, reason, total)

	for s.level(total) > levelBefore {
		newLevel := s.level(total)
		levelBefore = newLevel

		total = s.repo.AddXP(agentID, s.rules.LevelUpBonus)
		s.publishXPAwarded(ctx, agentID, s.rules.LevelUpBonus, "level up bonus", total)

		if err := s.bus.PublishSync(ctx, events.LevelUp{
			BaseEvent: events.NewBaseEvent(),
			AgentID:   agentID,
			AgentName: s.agentName(agentID),
			NewLevel:  newLevel,
		}); err != nil {
			s.log.Error("level up handlers failed", "error", err, "agentId", agentID)
		}
	}

	s.repo.SetToast(agentID, repository.Toast{
		Amount:  amount,
		Reason:  reason,
		TotalXP: total,
		At:      time.Now(),
	})

	return s.performanceView(agentID), nil
}

// ConsumeToast clears and returns the pending XP toast. The second return
// is false when no toast is pending.
func (s *Service) ConsumeToast(_ context.Context, agentID uuid.UUID) (repository.Toast, bool) {
	return s.repo.ConsumeToast(agentID)
}

// RecordQualifyingActivity counts a streak-eligible action on the given day.
// Repeats on the same day change nothing; a consecutive day extends the
// streak; a gap resets it to 1.
func (s *Service) RecordQualifyingActivity(_ context.Context, agentID uuid.UUID, day time.Time) PerformanceView {
	s.repo.RecordActivity(agentID, day)
	return s.performanceView(agentID)
}

// Performance returns the agent's progression snapshot.
func (s *Service) Performance(_ context.Context, agentID uuid.UUID) PerformanceView {
	return s.performanceView(agentID)
}

// Progress returns the agent's derived level and current streak. The
// leaderboard reads these as display fields.
func (s *Service) Progress(_ context.Context, agentID uuid.UUID) (level, streak int) {
	perf := s.repo.Performance(agentID)
	return s.level(perf.XP), perf.CurrentStreak
}

// Stats returns the agent's aggregate stat surface.
func (s *Service) Stats(_ context.Context, agentID uuid.UUID) StatsView {
	return s.statsView(agentID)
}

// Achievements returns every achievement definition with its unlock state.
func (s *Service) Achievements(_ context.Context, agentID uuid.UUID) []AchievementView {
	views := make([]AchievementView, 0, len(s.rules.Achievements))
	for _, def := range s.rules.Achievements {
		view := AchievementView{Achievement: def}
		if at, ok := s.repo.UnlockedAt(agentID, def.ID); ok {
			view.Unlocked = true
			view.UnlockedAt = at.UTC().Format(time.RFC3339)
		}
		views = append(views, view)
	}
	return views
}

// CompleteTraining records a finished training module. Trainings count
// toward the streak and the trainings stat, and may carry an XP reward.
func (s *Service) CompleteTraining(ctx context.Context, agentID uuid.UUID, trainingID string, xpReward int) (PerformanceView, error) {
	if trainingID == "" {
		return PerformanceView{}, apperr.Validation("trainingId is required")
	}
	if xpReward < 0 {
		return PerformanceView{}, apperr.Validation("xpReward cannot be negative")
	}

	s.repo.IncTrainingsCompleted(agentID)
	s.repo.RecordActivity(agentID, time.Now())

	if xpReward > 0 {
		if _, err := s.AddXP(ctx, agentID, xpReward, "training: "+trainingID); err != nil {
			return PerformanceView{}, err
		}
	}

	s.EvaluateAchievements(ctx, agentID)
	return s.performanceView(agentID), nil
}

// EvaluateAchievements checks every locked achievement against the current
// stats and unlocks the satisfied ones, awarding their XP once. Already
// unlocked achievements are skipped, so repeated calls are safe.
func (s *Service) EvaluateAchievements(ctx context.Context, agentID uuid.UUID) {
	stats := s.statsView(agentID)

	for _, def := range s.rules.Achievements {
		if s.metricValue(stats, def.Metric) < def.Threshold {
			continue
		}
		if !s.repo.MarkUnlocked(agentID, def.ID, time.Now()) {
			continue
		}

		if def.XPReward > 0 {
			if _, err := s.AddXP(ctx, agentID, def.XPReward, def.Name); err != nil {
				s.log.Error("achievement reward failed", "error", err, "achievementId", def.ID)
			}
		}

		if err := s.bus.PublishSync(ctx, events.AchievementUnlocked{
			BaseEvent:       events.NewBaseEvent(),
			AgentID:         agentID,
			AgentName:       s.agentName(agentID),
			AchievementID:   def.ID,
			AchievementName: def.Name,
			XPReward:        def.XPReward,
		}); err != nil {
			s.log.Error("achievement handlers failed", "error", err, "achievementId", def.ID)
		}
	}
}

func (s *Service) metricValue(stats StatsView, m rules.Metric) int {
	switch m {
	case rules.MetricCallsLogged:
		return stats.CallsLogged
	case rules.MetricTasksCompleted:
		return stats.TasksCompleted
	case rules.MetricLeadsCreated:
		return stats.LeadsCreated
	case rules.MetricLeadsClosed:
		return stats.LeadsClosed
	case rules.MetricTrainingsCompleted:
		return stats.TrainingsCompleted
	case rules.MetricCurrentStreak:
		return stats.CurrentStreak
	case rules.MetricTotalXP:
		return stats.TotalXP
	}
	return 0
}

func (s *Service) performanceView(agentID uuid.UUID) PerformanceView {
	perf := s.repo.Performance(agentID)
	view := PerformanceView{
		AgentID:       perf.AgentID,
		XP:            perf.XP,
		Level:         s.level(perf.XP),
		CurrentStreak: perf.CurrentStreak,
		LongestStreak: perf.LongestStreak,
	}
	if !perf.LastActivityDate.IsZero() {
		view.LastActivityDate = perf.LastActivityDate.Format(dateLayout)
	}
	return view
}

func (s *Service) statsView(agentID uuid.UUID) StatsView {
	perf := s.repo.Performance(agentID)
	return StatsView{
		Stats:         s.repo.Stats(agentID),
		CurrentStreak: perf.CurrentStreak,
		TotalXP:       perf.XP,
	}
}

func (s *Service) agentName(agentID uuid.UUID) string {
	if s.directory == nil {
		return ""
	}
	return s.directory.DisplayName(agentID)
}

func (s *Service) publishXPAwarded(ctx context.Context, agentID uuid.UUID, amount int, reason string, total int) {
	if err := s.bus.PublishSync(ctx, events.XPAwarded{
		BaseEvent: events.NewBaseEvent(),
		AgentID:   agentID,
		Amount:    amount,
		Reason:    reason,
		TotalXP:   total,
	}); err != nil {
		s.log.Error("xp award handlers failed", "error", err, "agentId", agentID)
	}
}

// RegisterSubscriptions wires the engine to the domain events that feed it.
func (s *Service) RegisterSubscriptions(bus events.Bus) {
	bus.Subscribe(events.ActivityLogged{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		evt, ok := e.(events.ActivityLogged)
		if !ok {
			return nil
		}
		if evt.ActivityType == leadsdomain.ActivityCall {
			s.repo.IncCallsLogged(evt.AgentID)
		}
		s.repo.RecordActivity(evt.AgentID, evt.OccurredAt())
		s.EvaluateAchievements(ctx, evt.AgentID)
		return nil
	}))

	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		evt, ok := e.(events.LeadCreated)
		if !ok {
			return nil
		}
		s.repo.IncLeadsCreated(evt.AgentID)
		s.EvaluateAchievements(ctx, evt.AgentID)
		return nil
	}))

	bus.Subscribe(events.LeadStatusChanged{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		evt, ok := e.(events.LeadStatusChanged)
		if !ok {
			return nil
		}
		if evt.NewStatus != leadsdomain.StatusClosed {
			return nil
		}
		s.repo.IncLeadsClosed(evt.AgentID)
		s.EvaluateAchievements(ctx, evt.AgentID)
		return nil
	}))

	bus.Subscribe(events.TaskCompleted{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		evt, ok := e.(events.TaskCompleted)
		if !ok {
			return nil
		}
		if evt.PerformanceImpact > 0 {
			if _, err := s.AddXP(ctx, evt.AgentID, evt.PerformanceImpact, "task: "+evt.Title); err != nil {
				return err
			}
		}
		s.repo.IncTasksCompleted(evt.AgentID)
		s.repo.RecordActivity(evt.AgentID, evt.OccurredAt())
		s.EvaluateAchievements(ctx, evt.AgentID)
		return nil
	}))
}
