// Package scheduler runs reminder due-time delivery on asynq. The client
// half enqueues tasks at the reminder's date and time; the worker half runs
// in-process with the API and raises ReminderDue on the event bus.
package scheduler

import (
	"context"
	"fmt"

	"agentportal_backend/internal/events"
	"agentportal_backend/platform/config"
	"agentportal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	bus    events.Bus
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		bus:    bus,
		log:    log,
	}

	mux.HandleFunc(TaskLeadReminderDue, w.handleLeadReminderDue)

	return w, nil
}

// Run starts the asynq server and blocks until Shutdown.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

// Shutdown stops the asynq server gracefully.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleLeadReminderDue(ctx context.Context, task *asynq.Task) error {
	if w.bus == nil {
		return nil
	}

	payload, err := ParseLeadReminderPayload(task)
	if err != nil {
		return err
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return fmt.Errorf("invalid leadId in reminder payload: %w", err)
	}
	agentID, err := uuid.Parse(payload.AgentID)
	if err != nil {
		return fmt.Errorf("invalid agentId in reminder payload: %w", err)
	}
	reminderID, err := uuid.Parse(payload.ReminderID)
	if err != nil {
		return fmt.Errorf("invalid reminderId in reminder payload: %w", err)
	}

	w.log.Info("lead reminder due", "leadId", leadID, "reminderId", reminderID)

	return w.bus.PublishSync(ctx, events.ReminderDue{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     leadID,
		AgentID:    agentID,
		ReminderID: reminderID,
		LeadName:   payload.LeadName,
		Message:    payload.Message,
	})
}
