package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"meetbook/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds a delayed reminder task. The task id is derived
// from the booking and target, so re-enqueueing the same reminder (for
// example on a repeated confirm call) dedupes in the queue.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(fmt.Sprintf("reminder:%s:%s", payload.BookingID, payload.Target)),
	}
	return task, opts, nil
}
