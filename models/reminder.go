package models

import "time"

// ReminderPayload is the asynq task payload for a single reminder call.
type ReminderPayload struct {
	SessionID  string    `json:"sessionId"`
	ClientID   string    `json:"clientId"`
	ClientName string    `json:"clientName"`
	DateTime   time.Time `json:"dateTime"`
	Location   string    `json:"location"`
}

// SweepStats summarizes one pass of a bulk outbound-call loop.
type SweepStats struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}
