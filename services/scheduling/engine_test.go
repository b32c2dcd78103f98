package scheduling

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trainerRepo "coachline/database/repository/trainer"
	"coachline/models"
)

type fakeSessionRepo struct {
	sessions  map[string]*models.Session
	nextID    int
	createErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.Session) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	r.nextID++
	session.ID = fmt.Sprintf("s%d", r.nextID)
	copied := *session
	r.sessions[session.ID] = &copied
	return session.ID, nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*models.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.New("session not found")
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSessionRepo) GetForClient(_ context.Context, clientID string, _ int64) ([]models.Session, error) {
	var out []models.Session
	for _, s := range r.sessions {
		if s.ClientID == clientID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) GetUpcoming(context.Context, string, int) ([]models.Session, error) {
	return nil, nil
}

func (r *fakeSessionRepo) GetActiveForTrainerDay(_ context.Context, trainerID string, day time.Time) ([]models.Session, error) {
	var out []models.Session
	for _, s := range r.sessions {
		if s.TrainerID == trainerID && s.IsActive() &&
			s.DateTime.Year() == day.Year() && s.DateTime.YearDay() == day.YearDay() {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.sessions[id].Status = status
	return nil
}

func (r *fakeSessionRepo) Cancel(_ context.Context, id, reason string) error {
	r.sessions[id].Status = models.StatusCancelled
	r.sessions[id].CancellationReason = reason
	return nil
}

func (r *fakeSessionRepo) Reschedule(_ context.Context, id string, newTime time.Time) error {
	r.sessions[id].DateTime = newTime
	r.sessions[id].Status = models.StatusScheduled
	return nil
}

func (r *fakeSessionRepo) MarkReminderSent(_ context.Context, id, method string) error {
	r.sessions[id].ReminderSent = true
	r.sessions[id].LastReminderMethod = method
	return nil
}

func (r *fakeSessionRepo) GetNeedingReminders(context.Context, int) ([]models.Session, error) {
	return nil, nil
}

type fakeClientRepo struct {
	remaining  int
	decrements int
	increments int
}

func (r *fakeClientRepo) Create(_ context.Context, client *models.Client) (string, error) {
	client.ID = "c1"
	return "c1", nil
}

func (r *fakeClientRepo) GetByID(context.Context, string) (*models.Client, error) {
	return &models.Client{ID: "c1", SessionsRemaining: r.remaining}, nil
}

func (r *fakeClientRepo) GetByPhone(context.Context, string) (*models.Client, error) {
	return &models.Client{ID: "c1", SessionsRemaining: r.remaining}, nil
}

func (r *fakeClientRepo) Update(context.Context, string, map[string]interface{}) error {
	return nil
}

func (r *fakeClientRepo) DecrementSessionsRemaining(context.Context, string) (bool, error) {
	if r.remaining <= 0 {
		return false, nil
	}
	r.remaining--
	r.decrements++
	return true, nil
}

func (r *fakeClientRepo) IncrementSessionsRemaining(context.Context, string) error {
	r.remaining++
	r.increments++
	return nil
}

func (r *fakeClientRepo) SetSessionsRemaining(_ context.Context, _ string, remaining int) error {
	r.remaining = remaining
	return nil
}

type fakeTrainerRepo struct{}

func (fakeTrainerRepo) GetByID(_ context.Context, trainerID string) (*models.Trainer, error) {
	return &models.Trainer{ID: trainerID, OpenHour: 9, CloseHour: 18}, nil
}

func (fakeTrainerRepo) Create(_ context.Context, trainer *models.Trainer) (string, error) {
	return trainer.ID, nil
}

type missingTrainerRepo struct{}

func (missingTrainerRepo) GetByID(context.Context, string) (*models.Trainer, error) {
	return nil, trainerRepo.ErrTrainerNotFound
}

func (missingTrainerRepo) Create(_ context.Context, trainer *models.Trainer) (string, error) {
	return trainer.ID, nil
}

type fakeAppointmentRepo struct {
	appts []models.Appointment
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appt *models.Appointment) (string, error) {
	appt.ID = fmt.Sprintf("a%d", len(r.appts)+1)
	r.appts = append(r.appts, *appt)
	return appt.ID, nil
}

func (r *fakeAppointmentRepo) GetByID(context.Context, string) (*models.Appointment, error) {
	return nil, errors.New("appointment not found")
}

func (r *fakeAppointmentRepo) GetActiveForTrainerDay(_ context.Context, trainerID string, day time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appts {
		if a.TrainerID == trainerID && a.Status == models.StatusScheduled &&
			a.DateTime.YearDay() == day.YearDay() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) Cancel(context.Context, string, string) error { return nil }

func (r *fakeAppointmentRepo) Reschedule(context.Context, string, time.Time) error { return nil }

func newTestEngine(sessions *fakeSessionRepo, clients *fakeClientRepo) *DefaultEngine {
	return NewDefaultEngine(sessions, &fakeAppointmentRepo{}, clients, fakeTrainerRepo{}, 30)
}

func bookReq(start time.Time) BookSessionRequest {
	return BookSessionRequest{
		ClientID:   "c1",
		ClientName: "Jane Smith",
		TrainerID:  "t1",
		Start:      start,
		Duration:   60,
	}
}

func TestBookSessionDoubleBookingFails(t *testing.T) {
	sessions := newFakeSessionRepo()
	clients := &fakeClientRepo{remaining: 5}
	engine := newTestEngine(sessions, clients)
	ctx := context.Background()

	_, err := engine.BookSession(ctx, bookReq(at(10, 0)))
	require.NoError(t, err)

	_, err = engine.BookSession(ctx, bookReq(at(10, 0)))
	var unavailable *SlotUnavailableError
	require.ErrorAs(t, err, &unavailable)

	assert.Equal(t, 1, clients.decrements, "failed attempt must not consume a session")
	assert.Len(t, sessions.sessions, 1)
}

func TestBookSessionOverlappingIntervalFails(t *testing.T) {
	sessions := newFakeSessionRepo()
	clients := &fakeClientRepo{remaining: 5}
	engine := newTestEngine(sessions, clients)
	ctx := context.Background()

	_, err := engine.BookSession(ctx, bookReq(at(10, 0)))
	require.NoError(t, err)

	// Partially overlapping start.
	_, err = engine.BookSession(ctx, bookReq(at(10, 30)))
	var unavailable *SlotUnavailableError
	require.ErrorAs(t, err, &unavailable)

	// Back-to-back is fine.
	_, err = engine.BookSession(ctx, bookReq(at(11, 0)))
	require.NoError(t, err)
}

func TestBookSessionZeroQuota(t *testing.T) {
	sessions := newFakeSessionRepo()
	clients := &fakeClientRepo{remaining: 0}
	engine := newTestEngine(sessions, clients)

	_, err := engine.BookSession(context.Background(), bookReq(at(10, 0)))
	var exhausted *NoSessionsRemainingError
	require.ErrorAs(t, err, &exhausted)

	assert.Empty(t, sessions.sessions, "no session may be created on exhausted quota")
	assert.Equal(t, 0, clients.remaining)
}

func TestBookSessionRestoresQuotaOnCreateFailure(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.createErr = errors.New("write failed")
	clients := &fakeClientRepo{remaining: 3}
	engine := newTestEngine(sessions, clients)

	_, err := engine.BookSession(context.Background(), bookReq(at(10, 0)))
	require.Error(t, err)

	assert.Equal(t, 3, clients.remaining, "balance must be restored after a failed insert")
	assert.Equal(t, 1, clients.increments)
}

func TestRescheduleIgnoresOwnInterval(t *testing.T) {
	sessions := newFakeSessionRepo()
	clients := &fakeClientRepo{remaining: 5}
	engine := newTestEngine(sessions, clients)
	ctx := context.Background()

	booked, err := engine.BookSession(ctx, bookReq(at(10, 0)))
	require.NoError(t, err)

	// Overlaps the session's current interval; only other sessions block.
	require.NoError(t, engine.RescheduleSession(ctx, booked.ID, at(10, 30)))

	moved, err := sessions.GetByID(ctx, booked.ID)
	require.NoError(t, err)
	assert.True(t, moved.DateTime.Equal(at(10, 30)))
	assert.Equal(t, models.StatusScheduled, moved.Status)
}

func TestRescheduleConflictWithOtherSession(t *testing.T) {
	sessions := newFakeSessionRepo()
	clients := &fakeClientRepo{remaining: 5}
	engine := newTestEngine(sessions, clients)
	ctx := context.Background()

	first, err := engine.BookSession(ctx, bookReq(at(10, 0)))
	require.NoError(t, err)
	_, err = engine.BookSession(ctx, bookReq(at(14, 0)))
	require.NoError(t, err)

	var unavailable *SlotUnavailableError
	err = engine.RescheduleSession(ctx, first.ID, at(14, 30))
	require.ErrorAs(t, err, &unavailable)
}

func TestCancelledSessionFreesSlot(t *testing.T) {
	sessions := newFakeSessionRepo()
	clients := &fakeClientRepo{remaining: 5}
	engine := newTestEngine(sessions, clients)
	ctx := context.Background()

	booked, err := engine.BookSession(ctx, bookReq(at(10, 0)))
	require.NoError(t, err)

	slots, err := engine.AvailableSlots(ctx, "t1", testDay, 60)
	require.NoError(t, err)
	assert.NotContains(t, slots, at(10, 0))

	require.NoError(t, engine.CancelSession(ctx, booked.ID, "client request"))

	slots, err = engine.AvailableSlots(ctx, "t1", testDay, 60)
	require.NoError(t, err)
	assert.Contains(t, slots, at(10, 0))

	// And the freed interval is bookable again.
	_, err = engine.BookSession(ctx, bookReq(at(10, 0)))
	require.NoError(t, err)
}

func TestAvailableSlotsWithoutTrainerRecord(t *testing.T) {
	sessions := newFakeSessionRepo()
	clients := &fakeClientRepo{remaining: 5}
	engine := NewDefaultEngine(sessions, &fakeAppointmentRepo{}, clients, missingTrainerRepo{}, 30)
	ctx := context.Background()

	// An unprovisioned trainer runs on the default business-hours window.
	slots, err := engine.AvailableSlots(ctx, "ghost", testDay, 60)
	require.NoError(t, err)
	require.Len(t, slots, 17)
	assert.True(t, slots[0].Equal(at(9, 0)))
	assert.True(t, slots[len(slots)-1].Equal(at(17, 0)))

	// And bookings commit against the same window.
	_, err = engine.BookSession(ctx, bookReq(at(10, 0)))
	require.NoError(t, err)
}

func TestBookAppointmentNoQuota(t *testing.T) {
	sessions := newFakeSessionRepo()
	clients := &fakeClientRepo{remaining: 0}
	engine := newTestEngine(sessions, clients)
	ctx := context.Background()

	// Appointments carry no package balance, so zero quota does not block.
	_, err := engine.BookAppointment(ctx, BookAppointmentRequest{
		ClientID: "c1", TrainerID: "t1", Start: at(10, 0), Duration: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, clients.decrements)

	_, err = engine.BookAppointment(ctx, BookAppointmentRequest{
		ClientID: "c1", TrainerID: "t1", Start: at(10, 0), Duration: 60,
	})
	var unavailable *SlotUnavailableError
	require.ErrorAs(t, err, &unavailable)
}
