package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"agentportal_backend/internal/events"
	"agentportal_backend/internal/tasks/repository"
	"agentportal_backend/platform/apperr"
	"agentportal_backend/platform/logger"
)

func newTestService() (*Service, *[]events.TaskCompleted) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)

	var completed []events.TaskCompleted
	bus.Subscribe(events.TaskCompleted{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		completed = append(completed, e.(events.TaskCompleted))
		return nil
	}))

	return New(repository.New(), bus, log), &completed
}

func TestSetCompleted_AwardsOnlyOnFalseToTrueEdge(t *testing.T) {
	svc, completed := newTestService()
	agent := uuid.New()

	task, err := svc.AddTask(context.Background(), agent, AddTaskParams{Title: "Call block", PerformanceImpact: 75})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := svc.CompleteTask(context.Background(), agent, task.ID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if len(*completed) != 1 {
		t.Fatalf("expected 1 completion event, got %d", len(*completed))
	}

	// Completing an already completed task awards nothing.
	if _, err := svc.CompleteTask(context.Background(), agent, task.ID); err != nil {
		t.Fatalf("repeat complete failed: %v", err)
	}
	if len(*completed) != 1 {
		t.Fatalf("double completion must not re-award, got %d events", len(*completed))
	}

	// Undo claws nothing back and publishes nothing.
	if _, err := svc.SetCompleted(context.Background(), agent, task.ID, false); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if len(*completed) != 1 {
		t.Fatalf("undo must not publish, got %d events", len(*completed))
	}

	// Re-completing is a fresh false-to-true edge and awards again.
	if _, err := svc.CompleteTask(context.Background(), agent, task.ID); err != nil {
		t.Fatalf("re-complete failed: %v", err)
	}
	if len(*completed) != 2 {
		t.Fatalf("expected 2 completion events after toggle, got %d", len(*completed))
	}
	if (*completed)[1].PerformanceImpact != 75 {
		t.Fatalf("expected impact 75, got %d", (*completed)[1].PerformanceImpact)
	}
}

func TestCompleteTask_UnknownTaskIsNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CompleteTask(context.Background(), uuid.New(), uuid.New())
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddTask_RejectsNegativeImpact(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddTask(context.Background(), uuid.New(), AddTaskParams{Title: "Bad", PerformanceImpact: -5})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
