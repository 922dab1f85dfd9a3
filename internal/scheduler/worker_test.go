package scheduler

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"agentportal_backend/internal/events"
	"agentportal_backend/platform/logger"
)

func newTestWorker(t *testing.T) (*Worker, events.Bus) {
	t.Helper()
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	return &Worker{bus: bus, log: log}, bus
}

func TestHandleLeadReminderDue_PublishesReminderDue(t *testing.T) {
	w, bus := newTestWorker(t)

	var received []events.ReminderDue
	bus.Subscribe(events.ReminderDue{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		received = append(received, e.(events.ReminderDue))
		return nil
	}))

	leadID, agentID, reminderID := uuid.New(), uuid.New(), uuid.New()
	task, err := NewLeadReminderTask(LeadReminderPayload{
		LeadID:     leadID.String(),
		AgentID:    agentID.String(),
		ReminderID: reminderID.String(),
		LeadName:   "Pat Doe",
		Message:    "Follow up on the proposal",
	})
	if err != nil {
		t.Fatalf("building task failed: %v", err)
	}

	if err := w.handleLeadReminderDue(context.Background(), task); err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if len(received) != 1 {
		t.Fatalf("expected 1 reminder due event, got %d", len(received))
	}
	evt := received[0]
	if evt.LeadID != leadID || evt.AgentID != agentID || evt.ReminderID != reminderID {
		t.Fatalf("event ids do not match payload: %+v", evt)
	}
	if evt.LeadName != "Pat Doe" || evt.Message != "Follow up on the proposal" {
		t.Fatalf("event display fields do not match payload: %+v", evt)
	}
}

func TestHandleLeadReminderDue_RejectsMalformedPayload(t *testing.T) {
	w, _ := newTestWorker(t)

	task := asynq.NewTask(TaskLeadReminderDue, []byte("not json"))
	if err := w.handleLeadReminderDue(context.Background(), task); err == nil {
		t.Fatal("expected an error for a malformed payload")
	}
}

func TestHandleLeadReminderDue_RejectsInvalidIDs(t *testing.T) {
	valid := uuid.New().String()

	cases := []struct {
		name    string
		payload LeadReminderPayload
	}{
		{"bad lead id", LeadReminderPayload{LeadID: "nope", AgentID: valid, ReminderID: valid}},
		{"bad agent id", LeadReminderPayload{LeadID: valid, AgentID: "nope", ReminderID: valid}},
		{"bad reminder id", LeadReminderPayload{LeadID: valid, AgentID: valid, ReminderID: "nope"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, bus := newTestWorker(t)

			delivered := 0
			bus.Subscribe(events.ReminderDue{}.EventName(), events.HandlerFunc(func(_ context.Context, _ events.Event) error {
				delivered++
				return nil
			}))

			task, err := NewLeadReminderTask(tc.payload)
			if err != nil {
				t.Fatalf("building task failed: %v", err)
			}
			if err := w.handleLeadReminderDue(context.Background(), task); err == nil {
				t.Fatal("expected an error for an invalid id")
			}
			if delivered != 0 {
				t.Fatalf("no event must be published on a bad payload, got %d", delivered)
			}
		})
	}
}

func TestHandleLeadReminderDue_NoBusIsANoOp(t *testing.T) {
	w := &Worker{log: logger.New("development")}

	task, err := NewLeadReminderTask(LeadReminderPayload{
		LeadID:     uuid.New().String(),
		AgentID:    uuid.New().String(),
		ReminderID: uuid.New().String(),
	})
	if err != nil {
		t.Fatalf("building task failed: %v", err)
	}
	if err := w.handleLeadReminderDue(context.Background(), task); err != nil {
		t.Fatalf("nil bus must be a no-op, got %v", err)
	}
}
