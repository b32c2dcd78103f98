package tasks

import (
	"encoding/json"

	"coachline/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds the asynq task for one reminder call. The task id
// is pinned to the session so overlapping sweeps enqueue it at most once.
func NewReminderTask(payload models.ReminderPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.TaskID("reminder:" + payload.SessionID),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// ParseReminderPayload decodes a reminder task payload.
func ParseReminderPayload(task *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
