package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"agentportal_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
}

func (testEvent) EventName() string { return "test.event" }

func TestPublishSync_RunsHandlersInRegistrationOrder(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		bus.Subscribe("test.event", HandlerFunc(func(_ context.Context, _ Event) error {
			order = append(order, i)
			return nil
		}))
	}

	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent()}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("handlers must run in registration order, got %v", order)
	}
}

func TestPublishSync_JoinsErrorsButRunsAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	boom := errors.New("boom")

	ran := 0
	bus.Subscribe("test.event", HandlerFunc(func(_ context.Context, _ Event) error {
		ran++
		return boom
	}))
	bus.Subscribe("test.event", HandlerFunc(func(_ context.Context, _ Event) error {
		ran++
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent()})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to contain boom, got %v", err)
	}
	if ran != 2 {
		t.Fatalf("all handlers must run despite errors, got %d", ran)
	}
}

func TestPublishSync_NoHandlersIsANoOp(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent()}); err != nil {
		t.Fatalf("publishing without subscribers must succeed: %v", err)
	}
}

func TestPublish_DispatchesAsynchronously(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	done := make(chan struct{})
	bus.Subscribe("test.event", HandlerFunc(func(_ context.Context, _ Event) error {
		close(done)
		return nil
	}))

	bus.Publish(context.Background(), testEvent{NewBaseEvent()})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async handler was never invoked")
	}
}
