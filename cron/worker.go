package cron

import (
	"context"
	"errors"
	"log"
	"time"

	"coachline/config"
	sessionRepo "coachline/database/repository/session"
	"coachline/models"
	"coachline/services/outreach"
	"coachline/services/tasks"
	"coachline/utils"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in background. Each
// queued task places one outbound reminder call; the flag is only flipped
// after the call succeeds, so failed tasks are retried by asynq and picked
// up again by later sweeps.
func InitReminderWorker(sessions sessionRepo.SessionRepository, dispatcher outreach.Dispatcher) {
	srv := asynq.NewServer(
		utils.ReminderQueueRedisOpt(),
		asynq.Config{
			// One call at a time, matching the pacing of the sweep loop.
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(sessions, dispatcher))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(sessions sessionRepo.SessionRepository, dispatcher outreach.Dispatcher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReminderPayload(task)
		if err != nil {
			log.Printf("[ReminderWorker] invalid payload: %v", err)
			return err
		}

		// A sweep may have re-enqueued a session the worker already handled.
		session, err := sessions.GetByID(ctx, p.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return nil
			}
			return err
		}
		if session.ReminderSent || session.Status != models.StatusScheduled {
			return nil
		}

		if err := dispatcher.SendReminder(ctx, p.SessionID); err != nil {
			log.Printf("[ReminderWorker] reminder call failed for session %s: %v", p.SessionID, err)
			return err
		}
		if err := sessions.MarkReminderSent(ctx, p.SessionID, "phone"); err != nil {
			return err
		}

		// Pace successive calls.
		delay := time.Duration(config.AppConfig.CallDelaySeconds) * time.Second
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
			case <-timer.C:
			}
		}
		return nil
	}
}

// StartReminderSweep periodically finds sessions due a reminder and enqueues
// one task per session.
func StartReminderSweep(reminders *outreach.ReminderService) {
	client := asynq.NewClient(utils.ReminderQueueRedisOpt())
	interval := time.Duration(config.AppConfig.ReminderSweepMin) * time.Minute
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			sessions, err := reminders.SessionsNeedingReminders(ctx)
			cancel()
			if err != nil {
				log.Printf("[ReminderSweep] failed to list due sessions: %v", err)
				continue
			}

			for _, session := range sessions {
				task, opts, err := tasks.NewReminderTask(models.ReminderPayload{
					SessionID:  session.ID,
					ClientID:   session.ClientID,
					ClientName: session.ClientName,
					DateTime:   session.DateTime,
					Location:   session.Location,
				})
				if err != nil {
					log.Printf("[ReminderSweep] failed to build task for session %s: %v", session.ID, err)
					continue
				}
				if _, err := client.Enqueue(task, opts...); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
					log.Printf("[ReminderSweep] failed to enqueue session %s: %v", session.ID, err)
				}
			}
		}
	}()
}
