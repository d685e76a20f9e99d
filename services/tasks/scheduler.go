package tasks

import (
	"errors"
	"fmt"
	"time"

	"meetbook/models"
	"meetbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqReminderScheduler enqueues one reminder per booking party, firing at
// start minus the configured lead. Replaces a polling sweep: each task is
// keyed by booking id and fires exactly once; the worker's flag guard keeps
// delivery idempotent regardless of the scheduling mechanism.
type AsynqReminderScheduler struct {
	Client      *asynq.Client
	Lead        time.Duration
	HostEmailFn func(hostID string) (string, error)
}

// ScheduleForBooking queues the guest and host reminders for a confirmed
// booking. Already-queued duplicates (same booking and target) are ignored.
func (s *AsynqReminderScheduler) ScheduleForBooking(b *models.Booking) error {
	fireAt := b.Start.Add(-s.Lead)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}

	startText := b.Start.UTC().Format(time.RFC1123)
	payloads := []models.ReminderPayload{
		{
			BookingID: b.ID,
			Target:    models.ReminderTargetGuest,
			Email:     b.Guest.Email,
			Title:     "Your meeting starts soon",
			Body:      fmt.Sprintf("Your meeting starts at %s.", startText),
		},
	}

	hostEmail, err := s.HostEmailFn(b.HostID)
	if err != nil {
		utils.GetLogger().Warn("could not resolve host email for reminder",
			zap.String("hostID", b.HostID), zap.Error(err))
	} else {
		payloads = append(payloads, models.ReminderPayload{
			BookingID: b.ID,
			Target:    models.ReminderTargetHost,
			Email:     hostEmail,
			Title:     "Upcoming meeting",
			Body:      fmt.Sprintf("Your meeting with %s starts at %s.", b.Guest.Name, startText),
		})
	}

	for _, p := range payloads {
		task, opts, err := NewReminderTask(p, fireAt)
		if err != nil {
			return fmt.Errorf("failed to build reminder task: %w", err)
		}
		if _, err := s.Client.Enqueue(task, opts...); err != nil {
			if errors.Is(err, asynq.ErrTaskIDConflict) {
				continue
			}
			return fmt.Errorf("failed to enqueue reminder for booking %s: %w", p.BookingID, err)
		}
	}
	return nil
}
