package service

import (
	"context"
	"testing"
	"time"

	"agentportal_backend/internal/events"
	"agentportal_backend/internal/feed/repository"
	leadsdomain "agentportal_backend/internal/leads/domain"
	"agentportal_backend/platform/clock"
	"agentportal_backend/platform/logger"

	"github.com/google/uuid"
)

const badgeTTL = 5 * time.Second

func newTestService(capacity int) (*Service, *clock.Fake) {
	clk := clock.NewFake(time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC))
	svc := New(repository.New(capacity), clk, badgeTTL, logger.New("development"))
	return svc, clk
}

// waitFor polls cond until it holds or the deadline passes. Timer delivery
// from the fake clock crosses a goroutine, so tests cannot assert
// immediately after Advance.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestPublish_PrependsNewestFirst(t *testing.T) {
	svc, _ := newTestService(DefaultCapacity)
	defer svc.Stop()
	ctx := context.Background()

	first := svc.Publish(ctx, TypeDealClosed, "Sam", "closed a deal")
	second := svc.Publish(ctx, TypeTaskDone, "Sam", "finished tasks")

	items := svc.List(ctx)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Fatal("feed must be ordered newest first")
	}
	if !items[0].IsNew {
		t.Fatal("fresh items must carry the highlight flag")
	}
}

func TestPublish_CapEvictsOldest(t *testing.T) {
	svc, _ := newTestService(3)
	defer svc.Stop()
	ctx := context.Background()

	oldest := svc.Publish(ctx, TypeTaskDone, "", "one")
	svc.Publish(ctx, TypeTaskDone, "", "two")
	svc.Publish(ctx, TypeTaskDone, "", "three")
	svc.Publish(ctx, TypeTaskDone, "", "four")

	items := svc.List(ctx)
	if len(items) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(items))
	}
	for _, item := range items {
		if item.ID == oldest.ID {
			t.Fatal("oldest item must be evicted at capacity")
		}
	}
}

func TestPublish_BadgeClearsAfterTTL(t *testing.T) {
	svc, clk := newTestService(DefaultCapacity)
	defer svc.Stop()
	ctx := context.Background()

	item := svc.Publish(ctx, TypeDealClosed, "Sam", "closed a deal")

	clk.Advance(badgeTTL)

	waitFor(t, func() bool {
		items := svc.List(ctx)
		return len(items) == 1 && items[0].ID == item.ID && !items[0].IsNew
	})
}

func TestSimulator_TicksPublishCannedEvents(t *testing.T) {
	svc, clk := newTestService(DefaultCapacity)
	defer svc.Stop()
	ctx := context.Background()

	svc.StartSimulator(30 * time.Second)

	clk.Advance(30 * time.Second)
	waitFor(t, func() bool { return len(svc.List(ctx)) == 1 })

	clk.Advance(30 * time.Second)
	waitFor(t, func() bool { return len(svc.List(ctx)) == 2 })
}

func TestStop_CancelsSimulatorAndPendingBadges(t *testing.T) {
	svc, clk := newTestService(DefaultCapacity)
	ctx := context.Background()

	svc.StartSimulator(30 * time.Second)
	item := svc.Publish(ctx, TypeDealClosed, "Sam", "closed a deal")

	svc.Stop()

	// Neither the ticker nor the badge timer may mutate state after Stop.
	clk.Advance(time.Minute)
	time.Sleep(20 * time.Millisecond)

	items := svc.List(ctx)
	if len(items) != 1 {
		t.Fatalf("simulator must not publish after Stop, got %d items", len(items))
	}
	if items[0].ID != item.ID || !items[0].IsNew {
		t.Fatal("pending badge timer must be cancelled by Stop")
	}

	// Publishing after Stop still works but without a timer.
	late := svc.Publish(ctx, TypeTaskDone, "", "late")
	if late.IsNew {
		t.Fatal("items published after Stop must not carry the highlight flag")
	}
}

func TestSubscriptions_ClosedLeadReachesFeed(t *testing.T) {
	svc, _ := newTestService(DefaultCapacity)
	defer svc.Stop()
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	svc.RegisterSubscriptions(bus)
	ctx := context.Background()

	// Non-closing transitions stay off the feed.
	err := bus.PublishSync(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    uuid.New(),
		AgentID:   uuid.New(),
		LeadName:  "Pat Doe",
		OldStatus: leadsdomain.StatusNew,
		NewStatus: leadsdomain.StatusContacted,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if len(svc.List(ctx)) != 0 {
		t.Fatal("non-closing transitions must not reach the feed")
	}

	err = bus.PublishSync(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    uuid.New(),
		AgentID:   uuid.New(),
		LeadName:  "Pat Doe",
		OldStatus: leadsdomain.StatusProposal,
		NewStatus: leadsdomain.StatusClosed,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	items := svc.List(ctx)
	if len(items) != 1 || items[0].Type != TypeDealClosed {
		t.Fatalf("expected a deal_closed item, got %+v", items)
	}
}
