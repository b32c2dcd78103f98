package models

import "time"

// Appointment is the simple booking variant: same scheduling rules as a
// Session but with no package balance attached.
type Appointment struct {
	ID                 string     `bson:"id" json:"id"`
	ClientID           string     `bson:"clientId" json:"clientId"`
	TrainerID          string     `bson:"trainerId" json:"trainerId"`
	DateTime           time.Time  `bson:"dateTime" json:"dateTime"`
	Duration           int        `bson:"duration" json:"duration"` // minutes
	SessionType        string     `bson:"sessionType,omitempty" json:"sessionType,omitempty"`
	Status             string     `bson:"status" json:"status"`
	ReminderSent       bool       `bson:"reminderSent" json:"reminderSent"`
	CancellationReason string     `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	Notes              string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt          time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// End returns the appointment's exclusive end instant.
func (a *Appointment) End() time.Time {
	return a.DateTime.Add(time.Duration(a.Duration) * time.Minute)
}
