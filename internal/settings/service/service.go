// Package service implements per-agent settings.
package service

import (
	"context"

	"agentportal_backend/internal/settings/repository"
	"agentportal_backend/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo *repository.Repository
	log  *logger.Logger
}

func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Settings is the agent's settings snapshot.
type Settings struct {
	OnboardingCompleted bool `json:"onboardingCompleted"`
}

// Get returns the agent's settings.
func (s *Service) Get(ctx context.Context, agentID uuid.UUID) (Settings, error) {
	completed, err := s.repo.OnboardingCompleted(ctx, agentID)
	if err != nil {
		return Settings{}, err
	}
	return Settings{OnboardingCompleted: completed}, nil
}

// SetOnboardingCompleted stores the onboarding flag.
func (s *Service) SetOnboardingCompleted(ctx context.Context, agentID uuid.UUID, completed bool) error {
	return s.repo.SetOnboardingCompleted(ctx, agentID, completed)
}
