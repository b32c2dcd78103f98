package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Context struct {
	BaseURL string
	HTTP    *http.Client
}

func (c *Context) get(path string, out interface{}) error {
	resp, err := c.HTTP.Get(c.BaseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func (c *Context) post(path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Post(c.BaseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

type sessionView struct {
	ID           string    `json:"id"`
	ClientName   string    `json:"clientName"`
	DateTime     time.Time `json:"dateTime"`
	DurationMin  int       `json:"duration"`
	Status       string    `json:"status"`
	Location     string    `json:"location"`
	ReminderSent bool      `json:"reminderSent"`
}

type sessionList struct {
	Sessions []sessionView `json:"sessions"`
	Count    int           `json:"count"`
}

type sweepStats struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

func printSessions(sessions []sessionView) {
	if len(sessions) == 0 {
		fmt.Println("No sessions found")
		return
	}
	for _, s := range sessions {
		reminder := ""
		if s.ReminderSent {
			reminder = " (reminded)"
		}
		fmt.Printf("  %s  %-20s %-12s %s%s\n",
			s.DateTime.Format("Mon Jan 2 3:04 PM"), s.ClientName, s.Status, s.Location, reminder)
	}
}

type SweepCmd struct{}

func (c *SweepCmd) Run(ctx *Context) error {
	var stats sweepStats
	if err := ctx.post("/api/sessions/send-reminders", struct{}{}, &stats); err != nil {
		return err
	}
	fmt.Printf("Sweep complete: %d due, %d succeeded, %d failed\n",
		stats.Total, stats.Succeeded, stats.Failed)
	return nil
}

type ListRemindersCmd struct{}

func (c *ListRemindersCmd) Run(ctx *Context) error {
	var list sessionList
	if err := ctx.get("/api/sessions/reminders", &list); err != nil {
		return err
	}
	fmt.Printf("%d session(s) awaiting reminders:\n", list.Count)
	printSessions(list.Sessions)
	return nil
}

type ScheduleCallCmd struct {
	Phone string `arg:"" help:"Phone number to call."`
}

func (c *ScheduleCallCmd) Run(ctx *Context) error {
	req := map[string]interface{}{"type": "scheduling", "phones": []string{c.Phone}}
	var stats sweepStats
	if err := ctx.post("/api/calls/outbound", req, &stats); err != nil {
		return err
	}
	if stats.Failed > 0 {
		return fmt.Errorf("scheduling call to %s failed", c.Phone)
	}
	fmt.Printf("Scheduling call placed to %s\n", c.Phone)
	return nil
}

type FollowUpCallCmd struct {
	ClientID string `arg:"" help:"Client ID to follow up with."`
}

func (c *FollowUpCallCmd) Run(ctx *Context) error {
	req := map[string]interface{}{"type": "follow-up", "clientIds": []string{c.ClientID}}
	var stats sweepStats
	if err := ctx.post("/api/calls/outbound", req, &stats); err != nil {
		return err
	}
	if stats.Failed > 0 {
		return fmt.Errorf("follow-up call for client %s failed", c.ClientID)
	}
	fmt.Printf("Follow-up call placed for client %s\n", c.ClientID)
	return nil
}

type UpcomingCmd struct {
	Days      int    `help:"How many days ahead to look." default:"7"`
	TrainerID string `help:"Restrict to one trainer."`
}

func (c *UpcomingCmd) Run(ctx *Context) error {
	path := fmt.Sprintf("/api/sessions/upcoming?days=%d", c.Days)
	if c.TrainerID != "" {
		path += "&trainerId=" + c.TrainerID
	}
	var list sessionList
	if err := ctx.get(path, &list); err != nil {
		return err
	}
	fmt.Printf("%d upcoming session(s):\n", list.Count)
	printSessions(list.Sessions)
	return nil
}

type RemainingCmd struct {
	ClientID string `arg:"" help:"Client ID to look up."`
}

func (c *RemainingCmd) Run(ctx *Context) error {
	var balance struct {
		ClientID          string `json:"clientId"`
		Name              string `json:"name"`
		SessionsRemaining int    `json:"sessionsRemaining"`
		PackageSize       int    `json:"packageSize"`
	}
	if err := ctx.get("/api/clients/"+c.ClientID+"/remaining-sessions", &balance); err != nil {
		return err
	}
	fmt.Printf("%s: %d of %d sessions remaining\n",
		balance.Name, balance.SessionsRemaining, balance.PackageSize)
	return nil
}
