package outreach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"coachline/config"
	clientRepo "coachline/database/repository/client"
	sessionRepo "coachline/database/repository/session"
)

// Dispatcher places outbound calls through the external telephony
// collaborator. The core never touches audio or speech itself; it only asks
// for a call of a given purpose.
type Dispatcher interface {
	// SendReminder places a reminder call for the session.
	SendReminder(ctx context.Context, sessionID string) error
	// SendScheduling places a scheduling call to a phone number.
	SendScheduling(ctx context.Context, phone string) error
	// SendFollowUp places a follow-up call to an existing client.
	SendFollowUp(ctx context.Context, clientID string) error
}

// callRequest is the telephony collaborator's call-creation payload.
type callRequest struct {
	To       string `json:"to"`
	From     string `json:"from"`
	CallType string `json:"callType"`
	// Context lines the voice agent weaves into the call script.
	SessionID   string `json:"sessionId,omitempty"`
	ClientName  string `json:"clientName,omitempty"`
	SessionTime string `json:"sessionTime,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Package-level HTTP client for telephony calls.
var telephonyHTTPClient = &http.Client{Timeout: 5 * time.Second}

// HTTPDispatcher implements Dispatcher against the telephony collaborator's
// HTTP API.
type HTTPDispatcher struct {
	Sessions sessionRepo.SessionRepository
	Clients  clientRepo.ClientRepository
	BaseURL  string
	From     string
}

// NewHTTPDispatcher wires up an HTTPDispatcher from config.
func NewHTTPDispatcher(sessions sessionRepo.SessionRepository, clients clientRepo.ClientRepository) *HTTPDispatcher {
	return &HTTPDispatcher{
		Sessions: sessions,
		Clients:  clients,
		BaseURL:  config.AppConfig.TelephonyURL,
		From:     config.AppConfig.TelephonyFromPhone,
	}
}

func (d *HTTPDispatcher) SendReminder(ctx context.Context, sessionID string) error {
	session, err := d.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("reminder call: %w", err)
	}
	client, err := d.Clients.GetByID(ctx, session.ClientID)
	if err != nil {
		return fmt.Errorf("reminder call: %w", err)
	}

	return d.placeCall(ctx, callRequest{
		To:          client.Phone,
		From:        d.From,
		CallType:    "reminder",
		SessionID:   session.ID,
		ClientName:  session.ClientName,
		SessionTime: session.DateTime.Format("Monday, January 2 at 3:04 PM"),
		Location:    session.Location,
	})
}

func (d *HTTPDispatcher) SendScheduling(ctx context.Context, phone string) error {
	return d.placeCall(ctx, callRequest{
		To:       phone,
		From:     d.From,
		CallType: "scheduling",
	})
}

func (d *HTTPDispatcher) SendFollowUp(ctx context.Context, clientID string) error {
	client, err := d.Clients.GetByID(ctx, clientID)
	if err != nil {
		return fmt.Errorf("follow-up call: %w", err)
	}
	return d.placeCall(ctx, callRequest{
		To:         client.Phone,
		From:       d.From,
		CallType:   "follow_up",
		ClientName: client.Name,
	})
}

func (d *HTTPDispatcher) placeCall(ctx context.Context, call callRequest) error {
	body, err := json.Marshal(call)
	if err != nil {
		return fmt.Errorf("marshal call request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.BaseURL+"/calls", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build call request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := telephonyHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("telephony request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telephony returned status %d for %s call to %s", resp.StatusCode, call.CallType, call.To)
	}
	return nil
}
