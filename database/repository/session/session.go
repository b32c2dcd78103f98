package sessionRepo

import (
	"context"
	"time"

	"coachline/models"
)

// SessionRepository defines the data access methods for training sessions.
type SessionRepository interface {
	// Create persists a new session and returns its assigned ID.
	Create(ctx context.Context, session *models.Session) (string, error)
	// GetByID retrieves a session by its unique ID.
	GetByID(ctx context.Context, sessionID string) (*models.Session, error)
	// GetForClient returns a client's sessions, newest first.
	GetForClient(ctx context.Context, clientID string, limit int64) ([]models.Session, error)
	// GetUpcoming returns sessions between now and now+daysAhead, ascending.
	// An empty trainerID matches all trainers.
	GetUpcoming(ctx context.Context, trainerID string, daysAhead int) ([]models.Session, error)
	// GetActiveForTrainerDay returns the trainer's scheduled or confirmed
	// sessions on the calendar day containing day.
	GetActiveForTrainerDay(ctx context.Context, trainerID string, day time.Time) ([]models.Session, error)
	// UpdateStatus sets the session status.
	UpdateStatus(ctx context.Context, sessionID, status string) error
	// Cancel marks the session cancelled, keeping the document.
	Cancel(ctx context.Context, sessionID, reason string) error
	// Reschedule moves the session to a new start time and resets its
	// status to scheduled.
	Reschedule(ctx context.Context, sessionID string, newTime time.Time) error
	// MarkReminderSent flips the one-way reminder flag.
	MarkReminderSent(ctx context.Context, sessionID, method string) error
	// GetNeedingReminders returns scheduled, un-reminded sessions starting
	// at or before now+leadHours. No lower bound: stale sessions keep
	// surfacing until a reminder lands or the status changes.
	GetNeedingReminders(ctx context.Context, leadHours int) ([]models.Session, error)
}
