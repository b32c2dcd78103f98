package models

import "time"

// Session status values. Cancelled and rescheduled sessions keep their
// documents; nothing is ever deleted.
const (
	StatusScheduled   = "scheduled"
	StatusConfirmed   = "confirmed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
	StatusCompleted   = "completed"
)

// ActiveStatuses are the statuses that occupy a trainer's time.
var ActiveStatuses = []string{StatusScheduled, StatusConfirmed}

// Session represents a booked training session.
type Session struct {
	ID                 string     `bson:"id" json:"id"`
	ClientID           string     `bson:"clientId" json:"clientId"`
	ClientName         string     `bson:"clientName" json:"clientName"`
	TrainerID          string     `bson:"trainerId" json:"trainerId"`
	DateTime           time.Time  `bson:"dateTime" json:"dateTime"`
	Duration           int        `bson:"duration" json:"duration"` // minutes, > 0
	Location           string     `bson:"location" json:"location"`
	Status             string     `bson:"status" json:"status"`
	ReminderSent       bool       `bson:"reminderSent" json:"reminderSent"`
	ReminderSentAt     *time.Time `bson:"reminderSentAt,omitempty" json:"reminderSentAt,omitempty"`
	LastReminderMethod string     `bson:"lastReminderMethod,omitempty" json:"lastReminderMethod,omitempty"`
	CancellationReason string     `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	Notes              string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt          time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// End returns the session's exclusive end instant.
func (s *Session) End() time.Time {
	return s.DateTime.Add(time.Duration(s.Duration) * time.Minute)
}

// IsActive reports whether the session occupies its trainer's time.
func (s *Session) IsActive() bool {
	return s.Status == StatusScheduled || s.Status == StatusConfirmed
}
