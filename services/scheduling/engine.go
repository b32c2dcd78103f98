package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coachline/config"
	appointmentRepo "coachline/database/repository/appointment"
	clientRepo "coachline/database/repository/client"
	sessionRepo "coachline/database/repository/session"
	trainerRepo "coachline/database/repository/trainer"
	"coachline/models"
	"coachline/utils"

	"go.uber.org/zap"
)

// BookSessionRequest carries everything needed to commit a session booking.
type BookSessionRequest struct {
	ClientID   string
	ClientName string
	TrainerID  string
	Start      time.Time
	Duration   int // minutes; defaults to 60
	Location   string
	Notes      string
}

// BookAppointmentRequest is the simple variant with no package balance.
type BookAppointmentRequest struct {
	ClientID    string
	TrainerID   string
	Start       time.Time
	Duration    int
	SessionType string
	Notes       string
}

// Engine computes availability and commits bookings.
type Engine interface {
	// AvailableSlots returns the free start instants for the trainer on the
	// calendar day containing day.
	AvailableSlots(ctx context.Context, trainerID string, day time.Time, durationMin int) ([]time.Time, error)
	// BookSession validates availability and the client's package balance,
	// then creates the session. The balance is decremented exactly once per
	// committed booking and never on a failed attempt.
	BookSession(ctx context.Context, req BookSessionRequest) (*models.Session, error)
	// BookAppointment validates availability and creates an appointment.
	BookAppointment(ctx context.Context, req BookAppointmentRequest) (*models.Appointment, error)
	// CancelSession marks the session cancelled; the interval is freed for
	// subsequent availability computations.
	CancelSession(ctx context.Context, sessionID, reason string) error
	// RescheduleSession re-validates availability at the new time, ignoring
	// the session's own current interval.
	RescheduleSession(ctx context.Context, sessionID string, newStart time.Time) error
}

// DefaultEngine is the production scheduling engine.
type DefaultEngine struct {
	Sessions     sessionRepo.SessionRepository
	Appointments appointmentRepo.AppointmentRepository
	Clients      clientRepo.ClientRepository
	Trainers     trainerRepo.TrainerRepository
	// Granularity is the slot step in minutes; 30 when zero.
	Granularity int

	locks *dayLocks
}

// NewDefaultEngine wires up a DefaultEngine.
func NewDefaultEngine(
	sessions sessionRepo.SessionRepository,
	appts appointmentRepo.AppointmentRepository,
	clients clientRepo.ClientRepository,
	trainers trainerRepo.TrainerRepository,
	granularityMin int,
) *DefaultEngine {
	return &DefaultEngine{
		Sessions:     sessions,
		Appointments: appts,
		Clients:      clients,
		Trainers:     trainers,
		Granularity:  granularityMin,
		locks:        newDayLocks(),
	}
}

func (e *DefaultEngine) granularity() int {
	if e.Granularity <= 0 {
		return 30
	}
	return e.Granularity
}

func (e *DefaultEngine) trainerHours(ctx context.Context, trainerID string) (int, int, error) {
	trainer, err := e.Trainers.GetByID(ctx, trainerID)
	if errors.Is(err, trainerRepo.ErrTrainerNotFound) {
		// Trainers are optional records; deployments that never provision
		// them run on the business-hours window.
		open, close := defaultBusinessHours()
		return open, close, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load trainer %s: %w", trainerID, err)
	}
	return trainer.OpenHour, trainer.CloseHour, nil
}

func defaultBusinessHours() (int, int) {
	open, close := config.AppConfig.BusinessOpenHour, config.AppConfig.BusinessCloseHour
	if close <= open {
		return 9, 18
	}
	return open, close
}

func (e *DefaultEngine) busyIntervals(ctx context.Context, trainerID string, day time.Time) ([]taggedInterval, error) {
	sessions, err := e.Sessions.GetActiveForTrainerDay(ctx, trainerID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load trainer sessions: %w", err)
	}
	busy := make([]taggedInterval, 0, len(sessions))
	for _, s := range sessions {
		busy = append(busy, taggedInterval{
			Interval: Interval{Start: s.DateTime, End: s.End()},
			id:       s.ID,
		})
	}
	return busy, nil
}

func (e *DefaultEngine) AvailableSlots(ctx context.Context, trainerID string, day time.Time, durationMin int) ([]time.Time, error) {
	if durationMin <= 0 {
		durationMin = 60
	}
	open, close, err := e.trainerHours(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	busy, err := e.busyIntervals(ctx, trainerID, day)
	if err != nil {
		return nil, err
	}

	intervals := make([]Interval, len(busy))
	for i, b := range busy {
		intervals[i] = b.Interval
	}
	return ComputeFreeSlots(day, open, close, durationMin, e.granularity(), intervals), nil
}

func (e *DefaultEngine) BookSession(ctx context.Context, req BookSessionRequest) (*models.Session, error) {
	logger := utils.GetLogger()
	if req.Duration <= 0 {
		req.Duration = 60
	}

	unlock := e.locks.lock(req.TrainerID, req.Start)
	defer unlock()

	// Re-validate at commit time, inside the trainer/day critical section.
	busy, err := e.busyIntervals(ctx, req.TrainerID, req.Start)
	if err != nil {
		return nil, err
	}
	if conflictsWith(req.Start, req.Duration, busy, "") {
		return nil, &SlotUnavailableError{TrainerID: req.TrainerID, Start: req.Start, Duration: req.Duration}
	}

	// Consume one package session before writing; the conditional update
	// keeps the balance non-negative under concurrent bookings.
	ok, err := e.Clients.DecrementSessionsRemaining(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to consume package session: %w", err)
	}
	if !ok {
		return nil, &NoSessionsRemainingError{ClientID: req.ClientID}
	}

	session := &models.Session{
		ClientID:   req.ClientID,
		ClientName: req.ClientName,
		TrainerID:  req.TrainerID,
		DateTime:   req.Start,
		Duration:   req.Duration,
		Location:   req.Location,
		Status:     models.StatusScheduled,
		Notes:      req.Notes,
	}
	if _, err := e.Sessions.Create(ctx, session); err != nil {
		// Restore the balance so a failed attempt never costs a session.
		if restoreErr := e.Clients.IncrementSessionsRemaining(ctx, req.ClientID); restoreErr != nil {
			logger.Error("failed to restore package session after booking failure",
				zap.String("clientID", req.ClientID), zap.Error(restoreErr))
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	logger.Info("session booked",
		zap.String("sessionID", session.ID),
		zap.String("trainerID", req.TrainerID),
		zap.Time("start", req.Start))
	return session, nil
}

func (e *DefaultEngine) BookAppointment(ctx context.Context, req BookAppointmentRequest) (*models.Appointment, error) {
	if req.Duration <= 0 {
		req.Duration = 60
	}

	unlock := e.locks.lock(req.TrainerID, req.Start)
	defer unlock()

	appts, err := e.Appointments.GetActiveForTrainerDay(ctx, req.TrainerID, req.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to load trainer appointments: %w", err)
	}
	busy := make([]taggedInterval, 0, len(appts))
	for _, a := range appts {
		busy = append(busy, taggedInterval{
			Interval: Interval{Start: a.DateTime, End: a.End()},
			id:       a.ID,
		})
	}
	if conflictsWith(req.Start, req.Duration, busy, "") {
		return nil, &SlotUnavailableError{TrainerID: req.TrainerID, Start: req.Start, Duration: req.Duration}
	}

	appt := &models.Appointment{
		ClientID:    req.ClientID,
		TrainerID:   req.TrainerID,
		DateTime:    req.Start,
		Duration:    req.Duration,
		SessionType: req.SessionType,
		Status:      models.StatusScheduled,
		Notes:       req.Notes,
	}
	if _, err := e.Appointments.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appt, nil
}

func (e *DefaultEngine) CancelSession(ctx context.Context, sessionID, reason string) error {
	if err := e.Sessions.Cancel(ctx, sessionID, reason); err != nil {
		return err
	}
	utils.GetLogger().Info("session cancelled",
		zap.String("sessionID", sessionID), zap.String("reason", reason))
	return nil
}

func (e *DefaultEngine) RescheduleSession(ctx context.Context, sessionID string, newStart time.Time) error {
	session, err := e.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}

	unlock := e.locks.lock(session.TrainerID, newStart)
	defer unlock()

	busy, err := e.busyIntervals(ctx, session.TrainerID, newStart)
	if err != nil {
		return err
	}
	// The session's own current interval must not block its new time.
	if conflictsWith(newStart, session.Duration, busy, session.ID) {
		return &SlotUnavailableError{TrainerID: session.TrainerID, Start: newStart, Duration: session.Duration}
	}

	return e.Sessions.Reschedule(ctx, sessionID, newStart)
}
