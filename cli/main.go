// File: coachline/cli/main.go
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"
)

var CLI struct {
	Version kong.VersionFlag
	Server  string `help:"Coachline server base URL." default:"http://localhost:8080" env:"COACHLINE_SERVER"`

	Remind struct {
		Sweep SweepCmd         `cmd:"" help:"Run one reminder sweep now."`
		List  ListRemindersCmd `cmd:"" help:"List sessions inside the reminder window."`
	} `cmd:"" help:"Manage reminder calls."`

	Call struct {
		Schedule ScheduleCallCmd `cmd:"" help:"Place a scheduling call to a phone number."`
		FollowUp FollowUpCallCmd `cmd:"" help:"Place a follow-up call to a client."`
	} `cmd:"" help:"Place outbound calls."`

	Sessions struct {
		Upcoming UpcomingCmd `cmd:"" help:"List upcoming sessions."`
	} `cmd:"" help:"Inspect sessions."`

	Client struct {
		Remaining RemainingCmd `cmd:"" help:"Show a client's package balance."`
	} `cmd:"" help:"Inspect clients."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("coachlinectl"),
		kong.Description("Operator CLI for the coachline booking server"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	appCtx := &Context{
		BaseURL: CLI.Server,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
