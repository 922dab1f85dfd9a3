package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadReminderDue = "leads.reminder.due"

// LeadReminderPayload carries everything the worker needs to raise the due
// notification without a lookup, since lead state lives in the API process.
type LeadReminderPayload struct {
	LeadID     string `json:"leadId"`
	AgentID    string `json:"agentId"`
	ReminderID string `json:"reminderId"`
	LeadName   string `json:"leadName"`
	Message    string `json:"message"`
}

func NewLeadReminderTask(payload LeadReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadReminderDue, data), nil
}

func ParseLeadReminderPayload(task *asynq.Task) (LeadReminderPayload, error) {
	var payload LeadReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadReminderPayload{}, err
	}
	return payload, nil
}
