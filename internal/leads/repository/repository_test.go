package repository

import (
	"testing"

	"github.com/google/uuid"

	"agentportal_backend/internal/leads/domain"
	"agentportal_backend/platform/apperr"
)

func newLead(agentID uuid.UUID, name, email, phone string) *Lead {
	return &Lead{
		AgentID: agentID,
		Name:    name,
		Email:   email,
		Phone:   phone,
		Status:  domain.StatusNew,
	}
}

func TestCreate_RejectsDuplicateEmailCaseAndWhitespace(t *testing.T) {
	repo := New()
	agent := uuid.New()

	if _, err := repo.Create(newLead(agent, "First", "a@x.com", "")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := repo.Create(newLead(agent, "Second", "A@X.com ", ""))
	if err == nil {
		t.Fatal("expected duplicate email to be rejected")
	}
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("expected conflict kind, got %v", apperr.GetKind(err))
	}
}

func TestCreate_RejectsDuplicatePhone(t *testing.T) {
	repo := New()
	agent := uuid.New()

	if _, err := repo.Create(newLead(agent, "First", "", "(555) 123-4567")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	if _, err := repo.Create(newLead(agent, "Second", "", "5551234567")); err == nil {
		t.Fatal("expected duplicate phone to be rejected")
	}
}

func TestCreate_DistinctContactsSucceed(t *testing.T) {
	repo := New()
	agent := uuid.New()

	if _, err := repo.Create(newLead(agent, "First", "a@x.com", "")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := repo.Create(newLead(agent, "Second", "b@x.com", "")); err != nil {
		t.Fatalf("second create failed: %v", err)
	}
}

func TestSetStatus_AppendsHistoryOnlyOnRealChange(t *testing.T) {
	repo := New()
	agent := uuid.New()

	lead, err := repo.Create(newLead(agent, "Lead", "a@x.com", ""))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	old, changed, err := repo.SetStatus(agent, lead.ID, domain.StatusContacted)
	if err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if !changed || old != domain.StatusNew {
		t.Fatalf("expected change from new, got changed=%v old=%q", changed, old)
	}

	// Same status again: no-op, no history entry.
	_, changed, err = repo.SetStatus(agent, lead.ID, domain.StatusContacted)
	if err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if changed {
		t.Fatal("same-status update must not count as a change")
	}

	got, _ := repo.Get(agent, lead.ID)
	if len(got.StatusHistory) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(got.StatusHistory))
	}
	if got.StatusHistory[0].From != domain.StatusNew || got.StatusHistory[0].To != domain.StatusContacted {
		t.Fatalf("unexpected history entry: %+v", got.StatusHistory[0])
	}
}

func TestSetStatus_TerminalStatusesAreReopenable(t *testing.T) {
	repo := New()
	agent := uuid.New()
	lead, _ := repo.Create(newLead(agent, "Lead", "a@x.com", ""))

	if _, _, err := repo.SetStatus(agent, lead.ID, domain.StatusClosed); err != nil {
		t.Fatalf("closing failed: %v", err)
	}
	if _, _, err := repo.SetStatus(agent, lead.ID, domain.StatusContacted); err != nil {
		t.Fatalf("reopening a closed lead must be allowed: %v", err)
	}

	got, _ := repo.Get(agent, lead.ID)
	if got.Status != domain.StatusContacted {
		t.Fatalf("expected contacted, got %q", got.Status)
	}
	if len(got.StatusHistory) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(got.StatusHistory))
	}
}

func TestSetStatus_UnknownLeadIsNotFound(t *testing.T) {
	repo := New()
	_, _, err := repo.SetStatus(uuid.New(), uuid.New(), domain.StatusContacted)
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTags_SetSemantics(t *testing.T) {
	repo := New()
	agent := uuid.New()
	lead, _ := repo.Create(newLead(agent, "Lead", "a@x.com", ""))

	if err := repo.AddTag(agent, lead.ID, "hot"); err != nil {
		t.Fatalf("add tag failed: %v", err)
	}
	if err := repo.AddTag(agent, lead.ID, "hot"); err != nil {
		t.Fatalf("re-adding an existing tag must be a no-op: %v", err)
	}

	got, _ := repo.Get(agent, lead.ID)
	if len(got.Tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(got.Tags))
	}

	if err := repo.RemoveTag(agent, lead.ID, "missing"); err != nil {
		t.Fatalf("removing an absent tag must be a no-op: %v", err)
	}
	if err := repo.RemoveTag(agent, lead.ID, "hot"); err != nil {
		t.Fatalf("remove tag failed: %v", err)
	}

	got, _ = repo.Get(agent, lead.ID)
	if len(got.Tags) != 0 {
		t.Fatalf("expected no tags, got %v", got.Tags)
	}
}

func TestCompleteReminder_IdempotentAndDefensive(t *testing.T) {
	repo := New()
	agent := uuid.New()
	lead, _ := repo.Create(newLead(agent, "Lead", "a@x.com", ""))

	rem, err := repo.AddReminder(agent, lead.ID, Reminder{Date: "2026-09-02", Time: "10:00", Message: "call back"})
	if err != nil {
		t.Fatalf("add reminder failed: %v", err)
	}

	if err := repo.CompleteReminder(agent, lead.ID, rem.ID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if err := repo.CompleteReminder(agent, lead.ID, rem.ID); err != nil {
		t.Fatalf("second complete must be a no-op: %v", err)
	}
	// Unknown reminder on a known lead is swallowed.
	if err := repo.CompleteReminder(agent, lead.ID, uuid.New()); err != nil {
		t.Fatalf("unknown reminder id must be a no-op: %v", err)
	}
	// Unknown lead is still a hard failure.
	if err := repo.CompleteReminder(agent, uuid.New(), rem.ID); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found for unknown lead, got %v", err)
	}

	got, _ := repo.Get(agent, lead.ID)
	if !got.Reminders[0].Completed {
		t.Fatal("reminder should be completed")
	}
}

func TestGet_ReturnsDeepCopies(t *testing.T) {
	repo := New()
	agent := uuid.New()
	lead, _ := repo.Create(newLead(agent, "Lead", "a@x.com", ""))
	_ = repo.AddTag(agent, lead.ID, "hot")

	snap, _ := repo.Get(agent, lead.ID)
	snap.Tags[0] = "mutated"
	snap.Name = "mutated"

	fresh, _ := repo.Get(agent, lead.ID)
	if fresh.Tags[0] != "hot" || fresh.Name != "Lead" {
		t.Fatal("snapshot mutation leaked into the repository")
	}
}
