package conversation

import (
	"context"
	"errors"
	"time"

	clientRepo "coachline/database/repository/client"
	"coachline/models"
	"coachline/services/scheduling"
)

// BookingFlow is the capability surface a product variant exposes to the
// dialogue engine: client resolution, quota policy, and the commit itself.
// The slot-filling conversation is identical across variants.
type BookingFlow interface {
	// ResolveClient finds the client by phone, creating one on first contact.
	ResolveClient(ctx context.Context, name, phone string) (*models.Client, error)
	// CheckQuota returns a NoSessionsRemainingError when the client cannot
	// book under this variant's policy.
	CheckQuota(ctx context.Context, client *models.Client) error
	// CommitBooking reserves the slot. remaining is the client's package
	// balance after the commit, or -1 when the variant tracks no balance.
	CommitBooking(ctx context.Context, client *models.Client, start time.Time) (remaining int, err error)
}

// SessionFlow books package-based training sessions.
type SessionFlow struct {
	Clients   clientRepo.ClientRepository
	Engine    scheduling.Engine
	TrainerID string
	Location  string
	Duration  int
}

func (f *SessionFlow) ResolveClient(ctx context.Context, name, phone string) (*models.Client, error) {
	// Phones are stored digits-only so "555.123.4567" and "555-123-4567"
	// resolve to the same client.
	phone = NormalizePhone(phone)
	client, err := f.Clients.GetByPhone(ctx, phone)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, clientRepo.ErrClientNotFound) {
		return nil, err
	}

	client = &models.Client{
		Name:      name,
		Phone:     phone,
		TrainerID: f.TrainerID,
	}
	if _, err := f.Clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (f *SessionFlow) CheckQuota(_ context.Context, client *models.Client) error {
	if client.SessionsRemaining <= 0 {
		return &scheduling.NoSessionsRemainingError{ClientID: client.ID}
	}
	return nil
}

func (f *SessionFlow) CommitBooking(ctx context.Context, client *models.Client, start time.Time) (int, error) {
	if _, err := f.Engine.BookSession(ctx, scheduling.BookSessionRequest{
		ClientID:   client.ID,
		ClientName: client.Name,
		TrainerID:  f.TrainerID,
		Start:      start,
		Duration:   f.Duration,
		Location:   f.Location,
	}); err != nil {
		return 0, err
	}
	return client.SessionsRemaining - 1, nil
}

// AppointmentFlow books simple appointments with no package balance.
type AppointmentFlow struct {
	Clients   clientRepo.ClientRepository
	Engine    scheduling.Engine
	TrainerID string
	Duration  int
}

func (f *AppointmentFlow) ResolveClient(ctx context.Context, name, phone string) (*models.Client, error) {
	phone = NormalizePhone(phone)
	client, err := f.Clients.GetByPhone(ctx, phone)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, clientRepo.ErrClientNotFound) {
		return nil, err
	}

	client = &models.Client{
		Name:      name,
		Phone:     phone,
		TrainerID: f.TrainerID,
	}
	if _, err := f.Clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (f *AppointmentFlow) CheckQuota(context.Context, *models.Client) error {
	return nil
}

func (f *AppointmentFlow) CommitBooking(ctx context.Context, client *models.Client, start time.Time) (int, error) {
	_, err := f.Engine.BookAppointment(ctx, scheduling.BookAppointmentRequest{
		ClientID:  client.ID,
		TrainerID: f.TrainerID,
		Start:     start,
		Duration:  f.Duration,
	})
	if err != nil {
		return 0, err
	}
	return -1, nil
}
