// Package service implements the task completion lifecycle.
package service

import (
	"context"

	"agentportal_backend/internal/events"
	"agentportal_backend/internal/tasks/repository"
	"agentportal_backend/platform/apperr"
	"agentportal_backend/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo *repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

func New(repo *repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// AddTaskParams holds the fields for a new task.
type AddTaskParams struct {
	Title             string
	Description       string
	Category          string
	DueDate           string
	PerformanceImpact int
}

// AddTask creates a task with completed=false.
func (s *Service) AddTask(_ context.Context, agentID uuid.UUID, p AddTaskParams) (repository.Task, error) {
	if p.Title == "" {
		return repository.Task{}, apperr.Validation("title is required")
	}
	if p.PerformanceImpact < 0 {
		return repository.Task{}, apperr.Validation("performanceImpact cannot be negative")
	}

	return s.repo.Add(repository.Task{
		AgentID:           agentID,
		Title:             p.Title,
		Description:       p.Description,
		Category:          p.Category,
		DueDate:           p.DueDate,
		PerformanceImpact: p.PerformanceImpact,
	}), nil
}

// ListTasks returns the agent's tasks, newest first.
func (s *Service) ListTasks(_ context.Context, agentID uuid.UUID) []repository.Task {
	return s.repo.List(agentID)
}

// SetCompleted flips a task's completion flag. Only the false-to-true edge
// publishes TaskCompleted and thereby awards XP; undoing a completion never
// claws rewards back, and repeating the current state awards nothing.
func (s *Service) SetCompleted(ctx context.Context, agentID, taskID uuid.UUID, completed bool) (repository.Task, error) {
	task, awardEdge, err := s.repo.SetCompleted(agentID, taskID, completed)
	if err != nil {
		return repository.Task{}, err
	}

	if awardEdge {
		if err := s.bus.PublishSync(ctx, events.TaskCompleted{
			BaseEvent:         events.NewBaseEvent(),
			TaskID:            task.ID,
			AgentID:           agentID,
			Title:             task.Title,
			PerformanceImpact: task.PerformanceImpact,
		}); err != nil {
			s.log.Error("task completion handlers failed", "error", err, "taskId", task.ID)
		}
	}

	return task, nil
}

// CompleteTask marks a task completed.
func (s *Service) CompleteTask(ctx context.Context, agentID, taskID uuid.UUID) (repository.Task, error) {
	return s.SetCompleted(ctx, agentID, taskID, true)
}
