package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coachline/models"
)

func TestNewReminderTask(t *testing.T) {
	payload := models.ReminderPayload{
		SessionID:  "s1",
		ClientID:   "c1",
		ClientName: "Jane",
		DateTime:   time.Date(2023, 12, 12, 14, 30, 0, 0, time.UTC),
		Location:   "Main Gym",
	}

	task, opts, err := NewReminderTask(payload)
	require.NoError(t, err)
	assert.Equal(t, TypeSendReminder, task.Type())
	assert.Len(t, opts, 2)

	decoded, err := ParseReminderPayload(task)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}
