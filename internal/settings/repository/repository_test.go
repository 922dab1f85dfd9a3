package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb)
}

func TestOnboardingFlag_DefaultsFalse(t *testing.T) {
	repo := newTestRepo(t)

	completed, err := repo.OnboardingCompleted(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if completed {
		t.Fatal("onboarding must default to incomplete")
	}
}

func TestOnboardingFlag_RoundTrips(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	agent := uuid.New()

	if err := repo.SetOnboardingCompleted(ctx, agent, true); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	completed, err := repo.OnboardingCompleted(ctx, agent)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !completed {
		t.Fatal("expected onboarding completed")
	}

	if err := repo.SetOnboardingCompleted(ctx, agent, false); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	completed, _ = repo.OnboardingCompleted(ctx, agent)
	if completed {
		t.Fatal("expected onboarding reset")
	}
}
