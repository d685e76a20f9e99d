package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"meetbook/config"
	bookingRepo "meetbook/database/repository/booking"
	"meetbook/models"
	"meetbook/services/notification"
	"meetbook/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(mailer notification.Mailer, bookings bookingRepo.Repository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(mailer, bookings))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleReminderTask delivers one reminder. It is idempotent per booking and
// target: once the sent flag is persisted a slow tick or restart cannot
// resend. A crash between send and flag write can duplicate at most once;
// that is the accepted at-least-once guarantee.
func handleReminderTask(mailer notification.Mailer, bookings bookingRepo.Repository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		b, err := bookings.GetByID(p.BookingID)
		if err != nil {
			if err == bookingRepo.ErrNotFound {
				return nil
			}
			return err
		}

		// The booking may have been cancelled after the task was queued.
		if b.Status != models.StatusConfirmed {
			return nil
		}

		template := notification.TemplateGuestReminder
		alreadySent := b.ReminderSentToGuest
		if p.Target == models.ReminderTargetHost {
			template = notification.TemplateHostReminder
			alreadySent = b.ReminderSentToHost
		}
		if alreadySent {
			return nil
		}

		data := map[string]string{
			"bookingId": b.ID,
			"guestName": b.Guest.Name,
			"start":     b.Start.UTC().Format(time.RFC3339),
			"end":       b.End.UTC().Format(time.RFC3339),
		}
		if err := mailer.SendEmail(ctx, p.Email, p.Title, template, data); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder: %v", err)
			return err
		}

		return bookings.SetReminderSent(b.ID, p.Target)
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
