package scheduling

import (
	"fmt"
	"time"
)

// SlotUnavailableError signals that a requested interval overlaps an
// existing active session for the trainer.
type SlotUnavailableError struct {
	TrainerID string
	Start     time.Time
	Duration  int
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("slot unavailable: trainer %s at %s for %d minutes",
		e.TrainerID, e.Start.Format(time.RFC3339), e.Duration)
}

// NoSessionsRemainingError signals that the client's package balance is
// exhausted. No session is created when this is returned.
type NoSessionsRemainingError struct {
	ClientID string
}

func (e *NoSessionsRemainingError) Error() string {
	return fmt.Sprintf("no sessions remaining in package for client %s", e.ClientID)
}
