package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coachline/models"
	"coachline/services/scheduling"
)

type recordingClients struct {
	fakeClients
	created *models.Client
}

func (r *recordingClients) Create(_ context.Context, client *models.Client) (string, error) {
	client.ID = "c-new"
	r.created = client
	return client.ID, nil
}

type stubEngine struct {
	scheduling.Engine
	bookErr error
	booked  *scheduling.BookSessionRequest
}

func (s *stubEngine) BookSession(_ context.Context, req scheduling.BookSessionRequest) (*models.Session, error) {
	s.booked = &req
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	return &models.Session{ID: "s1"}, nil
}

func TestSessionFlowResolveClientNormalizesPhone(t *testing.T) {
	clients := &recordingClients{fakeClients: fakeClients{byPhone: map[string]*models.Client{
		"5551234567": {ID: "c1", Name: "Jane", Phone: "5551234567"},
	}}}
	flow := &SessionFlow{Clients: clients, TrainerID: "t1"}

	client, err := flow.ResolveClient(context.Background(), "jane", "555.123.4567")
	require.NoError(t, err)
	assert.Equal(t, "c1", client.ID)
	assert.Nil(t, clients.created)
}

func TestSessionFlowResolveClientStoresNormalizedPhone(t *testing.T) {
	clients := &recordingClients{fakeClients: fakeClients{byPhone: map[string]*models.Client{}}}
	flow := &SessionFlow{Clients: clients, TrainerID: "t1"}

	client, err := flow.ResolveClient(context.Background(), "jane", "(555) 123-4567")
	require.NoError(t, err)
	require.NotNil(t, clients.created)
	assert.Equal(t, "5551234567", clients.created.Phone)
	assert.Equal(t, "5551234567", client.Phone)
}

func TestSessionFlowCommitBooking(t *testing.T) {
	engine := &stubEngine{}
	flow := &SessionFlow{Engine: engine, TrainerID: "t1", Location: "Main Gym", Duration: 60}
	client := &models.Client{ID: "c1", Name: "Jane", SessionsRemaining: 5}
	start := time.Date(2023, 12, 12, 14, 30, 0, 0, time.UTC)

	remaining, err := flow.CommitBooking(context.Background(), client, start)
	require.NoError(t, err)
	assert.Equal(t, 4, remaining)
	require.NotNil(t, engine.booked)
	assert.Equal(t, "c1", engine.booked.ClientID)
	assert.True(t, engine.booked.Start.Equal(start))

	engine.bookErr = &scheduling.SlotUnavailableError{TrainerID: "t1", Start: start, Duration: 60}
	_, err = flow.CommitBooking(context.Background(), client, start)
	assert.Error(t, err)
}
