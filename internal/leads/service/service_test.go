package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"agentportal_backend/internal/events"
	"agentportal_backend/internal/leads/domain"
	"agentportal_backend/internal/leads/repository"
	"agentportal_backend/platform/apperr"
	"agentportal_backend/platform/logger"
	"agentportal_backend/platform/validator"
)

type recorder struct {
	events []events.Event
}

func (r *recorder) record(bus events.Bus, names ...string) {
	for _, name := range names {
		bus.Subscribe(name, events.HandlerFunc(func(_ context.Context, e events.Event) error {
			r.events = append(r.events, e)
			return nil
		}))
	}
}

func newTestService() (*Service, *recorder) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	rec := &recorder{}
	rec.record(bus,
		events.LeadCreated{}.EventName(),
		events.LeadStatusChanged{}.EventName(),
		events.ActivityLogged{}.EventName(),
	)
	svc := New(repository.New(), bus, nil, validator.New(), log)
	return svc, rec
}

func TestCreateLead_PublishesLeadCreated(t *testing.T) {
	svc, rec := newTestService()
	agent := uuid.New()

	lead, err := svc.CreateLead(context.Background(), agent, CreateLeadParams{
		Name: "Pat Doe", Email: "pat@x.com", Product: "term-life",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if lead.Status != domain.StatusNew {
		t.Fatalf("expected status new, got %q", lead.Status)
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	created, ok := rec.events[0].(events.LeadCreated)
	if !ok || created.LeadID != lead.ID {
		t.Fatalf("unexpected event: %#v", rec.events[0])
	}
}

func TestCreateLead_RequiresContactInfo(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateLead(context.Background(), uuid.New(), CreateLeadParams{Name: "No Contact"})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.CreateLead(context.Background(), uuid.New(), CreateLeadParams{Name: "Bad Email", Email: "not-an-email"})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for malformed email, got %v", err)
	}
}

func TestUpdateStatus_SameStatusPublishesNothing(t *testing.T) {
	svc, rec := newTestService()
	agent := uuid.New()

	lead, _ := svc.CreateLead(context.Background(), agent, CreateLeadParams{Name: "Pat", Email: "pat@x.com"})
	rec.events = nil

	got, err := svc.UpdateStatus(context.Background(), agent, lead.ID, domain.StatusNew)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(got.StatusHistory) != 0 {
		t.Fatalf("same-status update must not append history, got %d entries", len(got.StatusHistory))
	}
	if len(rec.events) != 0 {
		t.Fatalf("same-status update must not publish, got %d events", len(rec.events))
	}
}

func TestUpdateStatus_ChangePublishesOldAndNew(t *testing.T) {
	svc, rec := newTestService()
	agent := uuid.New()

	lead, _ := svc.CreateLead(context.Background(), agent, CreateLeadParams{Name: "Pat", Email: "pat@x.com"})
	rec.events = nil

	if _, err := svc.UpdateStatus(context.Background(), agent, lead.ID, domain.StatusClosed); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	changed := rec.events[0].(events.LeadStatusChanged)
	if changed.OldStatus != domain.StatusNew || changed.NewStatus != domain.StatusClosed {
		t.Fatalf("unexpected transition %q -> %q", changed.OldStatus, changed.NewStatus)
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService()
	agent := uuid.New()
	lead, _ := svc.CreateLead(context.Background(), agent, CreateLeadParams{Name: "Pat", Email: "pat@x.com"})

	_, err := svc.UpdateStatus(context.Background(), agent, lead.ID, "archived")
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddActivity_PublishesAndKeepsStatus(t *testing.T) {
	svc, rec := newTestService()
	agent := uuid.New()
	lead, _ := svc.CreateLead(context.Background(), agent, CreateLeadParams{Name: "Pat", Email: "pat@x.com"})
	rec.events = nil

	entry, err := svc.AddActivity(context.Background(), agent, lead.ID, AddActivityParams{
		Type: domain.ActivityCall, Disposition: "no answer",
	})
	if err != nil {
		t.Fatalf("add activity failed: %v", err)
	}
	if entry.ID == uuid.Nil {
		t.Fatal("activity must get a fresh id")
	}

	got, _ := svc.GetLead(context.Background(), agent, lead.ID)
	if got.Status != domain.StatusNew {
		t.Fatalf("logging an activity must not alter status, got %q", got.Status)
	}
	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
}

func TestAddReminder_RejectsMalformedDate(t *testing.T) {
	svc, _ := newTestService()
	agent := uuid.New()
	lead, _ := svc.CreateLead(context.Background(), agent, CreateLeadParams{Name: "Pat", Email: "pat@x.com"})

	_, err := svc.AddReminder(context.Background(), agent, lead.ID, AddReminderParams{
		Date: "tomorrow", Time: "10:00", Message: "call",
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
