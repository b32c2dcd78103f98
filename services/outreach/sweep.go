package outreach

import (
	"context"
	"time"

	sessionRepo "coachline/database/repository/session"
	"coachline/models"
	"coachline/utils"

	"go.uber.org/zap"
)

// ReminderService finds sessions due a reminder and works through them one
// call at a time. The inter-call delay throttles call volume; it is pacing,
// not a correctness mechanism.
type ReminderService struct {
	Sessions   sessionRepo.SessionRepository
	Dispatcher Dispatcher
	LeadHours  int
	CallDelay  time.Duration

	// Now is injectable for tests; time.Now when nil.
	Now func() time.Time
}

func (s *ReminderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ReminderService) leadHours() int {
	if s.LeadHours <= 0 {
		return 24
	}
	return s.LeadHours
}

// SessionsNeedingReminders returns scheduled, un-reminded sessions starting
// at or before now+lead. There is no lower bound: sessions missed by earlier
// sweeps keep surfacing until a reminder lands or the status changes.
func (s *ReminderService) SessionsNeedingReminders(ctx context.Context) ([]models.Session, error) {
	sessions, err := s.Sessions.GetNeedingReminders(ctx, s.leadHours())
	if err != nil {
		return nil, err
	}

	// Sweeps can overlap the queue worker, so re-check each candidate
	// against the window before dispatching.
	cutoff := s.now().Add(time.Duration(s.leadHours()) * time.Hour)
	due := sessions[:0]
	for _, session := range sessions {
		if NeedsReminder(session, cutoff) {
			due = append(due, session)
		}
	}
	return due, nil
}

// NeedsReminder reports whether the session qualifies for a reminder given
// the window cutoff.
func NeedsReminder(session models.Session, cutoff time.Time) bool {
	return session.Status == models.StatusScheduled &&
		!session.ReminderSent &&
		!session.DateTime.After(cutoff)
}

// ProcessReminderQueue dispatches a reminder call per due session. One
// failing session never aborts the rest of the queue; its flag stays false
// and the next sweep retries it.
func (s *ReminderService) ProcessReminderQueue(ctx context.Context) (models.SweepStats, error) {
	logger := utils.GetLogger()

	sessions, err := s.SessionsNeedingReminders(ctx)
	if err != nil {
		return models.SweepStats{}, err
	}

	stats := models.SweepStats{Total: len(sessions)}
	logger.Info("reminder sweep started", zap.Int("due", stats.Total))

	for i, session := range sessions {
		if err := s.Dispatcher.SendReminder(ctx, session.ID); err != nil {
			stats.Failed++
			logger.Error("reminder call failed",
				zap.String("sessionID", session.ID), zap.Error(err))
		} else {
			stats.Succeeded++
			if err := s.Sessions.MarkReminderSent(ctx, session.ID, "phone"); err != nil {
				logger.Error("failed to flag reminder as sent",
					zap.String("sessionID", session.ID), zap.Error(err))
			}
		}

		if i < len(sessions)-1 {
			if err := s.pause(ctx); err != nil {
				return stats, err
			}
		}
	}

	logger.Info("reminder sweep finished",
		zap.Int("succeeded", stats.Succeeded), zap.Int("failed", stats.Failed))
	return stats, nil
}

// BulkScheduling places scheduling calls to a list of phone numbers with the
// same pacing and failure isolation as the reminder queue.
func (s *ReminderService) BulkScheduling(ctx context.Context, phones []string) (models.SweepStats, error) {
	logger := utils.GetLogger()
	stats := models.SweepStats{Total: len(phones)}

	for i, phone := range phones {
		if err := s.Dispatcher.SendScheduling(ctx, phone); err != nil {
			stats.Failed++
			logger.Error("scheduling call failed", zap.String("phone", phone), zap.Error(err))
		} else {
			stats.Succeeded++
		}
		if i < len(phones)-1 {
			if err := s.pause(ctx); err != nil {
				return stats, err
			}
		}
	}
	return stats, nil
}

// BulkFollowUp places follow-up calls to a list of clients.
func (s *ReminderService) BulkFollowUp(ctx context.Context, clientIDs []string) (models.SweepStats, error) {
	logger := utils.GetLogger()
	stats := models.SweepStats{Total: len(clientIDs)}

	for i, clientID := range clientIDs {
		if err := s.Dispatcher.SendFollowUp(ctx, clientID); err != nil {
			stats.Failed++
			logger.Error("follow-up call failed", zap.String("clientID", clientID), zap.Error(err))
		} else {
			stats.Succeeded++
		}
		if i < len(clientIDs)-1 {
			if err := s.pause(ctx); err != nil {
				return stats, err
			}
		}
	}
	return stats, nil
}

func (s *ReminderService) pause(ctx context.Context) error {
	if s.CallDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.CallDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
