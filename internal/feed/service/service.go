// Package service implements the activity feed: a capped, prepend-only log
// of cross-agent events fed by domain events and a simulated generator.
// Both sources go through the same Publish contract, so the feed cannot
// tell them apart.
package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"agentportal_backend/internal/events"
	"agentportal_backend/internal/feed/repository"
	leadsdomain "agentportal_backend/internal/leads/domain"
	"agentportal_backend/platform/clock"
	"agentportal_backend/platform/logger"

	"github.com/google/uuid"
)

// Feed item types.
const (
	TypeDealClosed  = "deal_closed"
	TypeTaskDone    = "task_done"
	TypeLevelUp     = "level_up"
	TypeAchievement = "achievement"
)

// DefaultCapacity is how many items the feed retains.
const DefaultCapacity = 20

type Service struct {
	repo     *repository.Repository
	clk      clock.Clock
	badgeTTL time.Duration
	log      *logger.Logger

	mu      sync.Mutex
	stopCh  chan struct{}
	stopped bool
	wg      sync.WaitGroup
}

func New(repo *repository.Repository, clk clock.Clock, badgeTTL time.Duration, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		clk:      clk,
		badgeTTL: badgeTTL,
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

// Publish prepends an item to the feed and starts the one-shot timer that
// clears its highlight flag. After Stop, items are published without the
// flag so no timer outlives teardown.
func (s *Service) Publish(_ context.Context, itemType, agentName, message string) repository.Item {
	item := repository.Item{
		ID:        uuid.New(),
		Type:      itemType,
		AgentName: agentName,
		Message:   message,
		Timestamp: s.clk.Now(),
		IsNew:     true,
	}

	s.mu.Lock()
	stopped := s.stopped
	if !stopped {
		s.wg.Add(1)
	}
	s.mu.Unlock()

	if stopped {
		item.IsNew = false
		s.repo.Prepend(item)
		return item
	}

	s.repo.Prepend(item)

	timer := s.clk.NewTimer(s.badgeTTL)
	go func() {
		defer s.wg.Done()
		defer timer.Stop()

		select {
		case <-timer.C():
			s.repo.ClearNew(item.ID)
		case <-s.stopCh:
		}
	}()

	return item
}

// List returns a snapshot of the feed, newest first.
func (s *Service) List(_ context.Context) []repository.Item {
	return s.repo.List()
}

// StartSimulator publishes a random canned event on every tick until Stop.
func (s *Service) StartSimulator(interval time.Duration) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	ticker := s.clk.NewTicker(interval)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C():
				item := cannedItems[rand.Intn(len(cannedItems))]
				s.Publish(context.Background(), item.itemType, item.agentName, item.message)
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop cancels the simulator and every pending highlight timer and waits
// for them to finish. Safe to call more than once.
func (s *Service) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
}

// RegisterSubscriptions wires the feed to the domain events it displays.
func (s *Service) RegisterSubscriptions(bus events.Bus) {
	bus.Subscribe(events.LeadStatusChanged{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		evt, ok := e.(events.LeadStatusChanged)
		if !ok || evt.NewStatus != leadsdomain.StatusClosed {
			return nil
		}
		s.Publish(ctx, TypeDealClosed, "", "Deal closed: "+evt.LeadName)
		return nil
	}))

	bus.Subscribe(events.TaskCompleted{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		evt, ok := e.(events.TaskCompleted)
		if !ok {
			return nil
		}
		s.Publish(ctx, TypeTaskDone, "", "Task completed: "+evt.Title)
		return nil
	}))

	bus.Subscribe(events.LevelUp{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		evt, ok := e.(events.LevelUp)
		if !ok {
			return nil
		}
		s.Publish(ctx, TypeLevelUp, evt.AgentName, fmt.Sprintf("reached level %d", evt.NewLevel))
		return nil
	}))

	bus.Subscribe(events.AchievementUnlocked{}.EventName(), events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		evt, ok := e.(events.AchievementUnlocked)
		if !ok {
			return nil
		}
		s.Publish(ctx, TypeAchievement, evt.AgentName, "unlocked "+evt.AchievementName)
		return nil
	}))
}

type cannedItem struct {
	itemType  string
	agentName string
	message   string
}

// cannedItems back the demo simulator. They are indistinguishable from real
// entries once published.
var cannedItems = []cannedItem{
	{TypeDealClosed, "Sarah M.", "closed a $2,400 AP deal"},
	{TypeDealClosed, "James T.", "closed a $5,100 AP deal"},
	{TypeLevelUp, "Priya K.", "reached level 4"},
	{TypeAchievement, "Miguel R.", "unlocked Call Machine"},
	{TypeTaskDone, "Dana W.", "finished a morning call block"},
	{TypeDealClosed, "Alex B.", "closed a $1,800 AP deal"},
	{TypeAchievement, "Jordan P.", "unlocked On Fire"},
}
