package outreach

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coachline/models"
)

type lookupSessionRepo struct {
	stubSessionRepo
	session models.Session
}

func (r *lookupSessionRepo) GetByID(context.Context, string) (*models.Session, error) {
	copied := r.session
	return &copied, nil
}

type lookupClientRepo struct {
	client models.Client
}

func (r *lookupClientRepo) Create(context.Context, *models.Client) (string, error) {
	return r.client.ID, nil
}

func (r *lookupClientRepo) GetByID(context.Context, string) (*models.Client, error) {
	copied := r.client
	return &copied, nil
}

func (r *lookupClientRepo) GetByPhone(context.Context, string) (*models.Client, error) {
	copied := r.client
	return &copied, nil
}

func (r *lookupClientRepo) Update(context.Context, string, map[string]interface{}) error { return nil }

func (r *lookupClientRepo) DecrementSessionsRemaining(context.Context, string) (bool, error) {
	return true, nil
}

func (r *lookupClientRepo) IncrementSessionsRemaining(context.Context, string) error { return nil }

func (r *lookupClientRepo) SetSessionsRemaining(context.Context, string, int) error { return nil }

func TestHTTPDispatcherSendReminder(t *testing.T) {
	var got callRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calls" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode call request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sessions := &lookupSessionRepo{session: models.Session{
		ID:         "s1",
		ClientID:   "c1",
		ClientName: "Jane Smith",
		DateTime:   time.Date(2023, 12, 12, 14, 30, 0, 0, time.UTC),
		Location:   "Main Gym",
	}}
	clients := &lookupClientRepo{client: models.Client{ID: "c1", Phone: "555-123-4567"}}

	d := &HTTPDispatcher{Sessions: sessions, Clients: clients, BaseURL: server.URL, From: "555-999-0000"}
	if err := d.SendReminder(context.Background(), "s1"); err != nil {
		t.Fatalf("SendReminder: %v", err)
	}

	if got.To != "555-123-4567" || got.From != "555-999-0000" {
		t.Errorf("unexpected endpoints: %+v", got)
	}
	if got.CallType != "reminder" || got.SessionID != "s1" {
		t.Errorf("unexpected call payload: %+v", got)
	}
	if got.SessionTime != "Tuesday, December 12 at 2:30 PM" {
		t.Errorf("sessionTime = %q", got.SessionTime)
	}
}

func TestHTTPDispatcherSurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	d := &HTTPDispatcher{BaseURL: server.URL, From: "555-999-0000"}
	if err := d.SendScheduling(context.Background(), "555-123-4567"); err == nil {
		t.Fatal("expected error on 502 response")
	}
}
