// Package repository persists per-agent settings in Redis. The only durable
// state the portal keeps outside the session is the onboarding flag.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyOnboardingPrefix = "settings:onboarding:"

// Repository stores agent settings in Redis.
type Repository struct {
	rdb *redis.Client
}

// New creates a settings repository on the given Redis client.
func New(rdb *redis.Client) *Repository {
	return &Repository{rdb: rdb}
}

func onboardingKey(agentID uuid.UUID) string {
	return keyOnboardingPrefix + agentID.String()
}

// OnboardingCompleted reports whether the agent finished onboarding.
func (r *Repository) OnboardingCompleted(ctx context.Context, agentID uuid.UUID) (bool, error) {
	val, err := r.rdb.Get(ctx, onboardingKey(agentID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading onboarding flag: %w", err)
	}
	return val == "1", nil
}

// SetOnboardingCompleted stores the onboarding flag.
func (r *Repository) SetOnboardingCompleted(ctx context.Context, agentID uuid.UUID, completed bool) error {
	val := "0"
	if completed {
		val = "1"
	}
	if err := r.rdb.Set(ctx, onboardingKey(agentID), val, 0).Err(); err != nil {
		return fmt.Errorf("writing onboarding flag: %w", err)
	}
	return nil
}
