package appointmentRepo

import (
	"context"
	"time"

	"coachline/models"
)

// AppointmentRepository defines the data access methods for the simple
// appointment variant.
type AppointmentRepository interface {
	// Create persists a new appointment and returns its assigned ID.
	Create(ctx context.Context, appt *models.Appointment) (string, error)
	// GetByID retrieves an appointment by its unique ID.
	GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	// GetActiveForTrainerDay returns the trainer's scheduled or confirmed
	// appointments on the calendar day containing day.
	GetActiveForTrainerDay(ctx context.Context, trainerID string, day time.Time) ([]models.Appointment, error)
	// Cancel marks the appointment cancelled, keeping the document.
	Cancel(ctx context.Context, appointmentID, reason string) error
	// Reschedule moves the appointment and resets its status to scheduled.
	Reschedule(ctx context.Context, appointmentID string, newTime time.Time) error
}
