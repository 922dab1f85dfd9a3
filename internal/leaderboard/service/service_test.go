package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"agentportal_backend/internal/leaderboard/domain"
	"agentportal_backend/internal/leaderboard/repository"
	"agentportal_backend/platform/apperr"
	"agentportal_backend/platform/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return New(repository.New(rdb), nil, nil, logger.New("development"))
}

func TestRank_SortsByAPDescending(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	low, mid, high := uuid.New(), uuid.New(), uuid.New()
	if err := svc.SetAP(ctx, low, domain.PeriodWeekly, 1000); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := svc.SetAP(ctx, mid, domain.PeriodWeekly, 2500); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := svc.SetAP(ctx, high, domain.PeriodWeekly, 9000); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	entries, err := svc.Rank(ctx, domain.PeriodWeekly)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].AgentID != high || entries[1].AgentID != mid || entries[2].AgentID != low {
		t.Fatalf("unexpected order: %+v", entries)
	}
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Fatalf("expected rank %d, got %d", i+1, e.Rank)
		}
		if e.Trend != domain.TrendSame {
			t.Fatalf("first snapshot must default to same, got %q", e.Trend)
		}
	}
}

func TestRank_TiesPreservePriorOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, b := uuid.New(), uuid.New()
	_ = svc.SetAP(ctx, a, domain.PeriodDaily, 500)
	_ = svc.SetAP(ctx, b, domain.PeriodDaily, 100)

	if _, err := svc.Rank(ctx, domain.PeriodDaily); err != nil {
		t.Fatalf("rank failed: %v", err)
	}

	// b catches up to a's figure; a keeps the better position on the tie.
	_ = svc.SetAP(ctx, b, domain.PeriodDaily, 500)
	entries, err := svc.Rank(ctx, domain.PeriodDaily)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}

	if entries[0].AgentID != a || entries[1].AgentID != b {
		t.Fatalf("tie must preserve prior relative order, got %+v", entries)
	}
	if entries[0].Trend != domain.TrendSame || entries[1].Trend != domain.TrendSame {
		t.Fatalf("positions unchanged, trends must be same: %+v", entries)
	}
}

func TestRank_TrendTracksPositionMovement(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, b := uuid.New(), uuid.New()
	_ = svc.SetAP(ctx, a, domain.PeriodMonthly, 900)
	_ = svc.SetAP(ctx, b, domain.PeriodMonthly, 400)

	if _, err := svc.Rank(ctx, domain.PeriodMonthly); err != nil {
		t.Fatalf("rank failed: %v", err)
	}

	_ = svc.SetAP(ctx, b, domain.PeriodMonthly, 1500)
	entries, err := svc.Rank(ctx, domain.PeriodMonthly)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}

	if entries[0].AgentID != b || entries[0].Trend != domain.TrendUp {
		t.Fatalf("expected b to move up, got %+v", entries[0])
	}
	if entries[1].AgentID != a || entries[1].Trend != domain.TrendDown {
		t.Fatalf("expected a to move down, got %+v", entries[1])
	}
}

func TestRank_RejectsUnknownPeriod(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Rank(context.Background(), "quarterly")
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddAP_KeepsTotalsNonNegative(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	agent := uuid.New()

	total, err := svc.AddAP(ctx, agent, domain.PeriodYearly, 2400)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if total != 2400 {
		t.Fatalf("expected total 2400, got %v", total)
	}

	if _, err := svc.AddAP(ctx, agent, domain.PeriodYearly, -5000); apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for negative total, got %v", err)
	}

	if err := svc.SetAP(ctx, agent, domain.PeriodYearly, -1); apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for negative AP, got %v", err)
	}
}
