package tasks

import (
	"encoding/json"
	"time"

	"roombook/models"

	"github.com/hibiken/asynq"
)

const TypeBookingsReset = "bookings:reset"

// NewResetTask builds the daily purge task. Replicas enqueueing the same
// firing collapse into one task; a failed purge is never retried.
func NewResetTask(payload models.ResetPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingsReset, b)
	opts := []asynq.Option{
		asynq.MaxRetry(0),
		asynq.Unique(time.Hour),
		asynq.Timeout(time.Minute),
	}
	return task, opts, nil
}

// ParseResetPayload decodes a task payload.
func ParseResetPayload(task *asynq.Task) (models.ResetPayload, error) {
	var p models.ResetPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
