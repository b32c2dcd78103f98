package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIntentSingleUtterance(t *testing.T) {
	ext := ExtractIntent("Hi, this is Jane Smith, my number is 555-123-4567 and I'd like to book a session tomorrow at 2:30 pm")

	assert.Equal(t, IntentSchedule, ext.Intent)
	assert.Equal(t, "jane smith", ext.Name)
	assert.Equal(t, "555-123-4567", ext.Phone)
	assert.Contains(t, ext.Dates, "tomorrow")
	assert.Contains(t, ext.Times, "2:30 pm")
}

func TestExtractIntentKeywordGroups(t *testing.T) {
	cases := []struct {
		utterance string
		intent    string
	}{
		{"I'd like to book a training session", IntentSchedule},
		{"I need to reschedule", IntentReschedule},
		{"Can you move my appointment to Friday?", IntentReschedule},
		{"Please cancel my appointment", IntentCancel},
		{"What times are available on Friday?", IntentCheckAvailability},
		{"How many do I have left?", IntentCheckRemaining},
		{"Hello there", IntentGeneral},
	}
	for _, tc := range cases {
		ext := ExtractIntent(tc.utterance)
		assert.Equal(t, tc.intent, ext.Intent, "utterance: %s", tc.utterance)
	}
}

func TestExtractIntentWordBoundaries(t *testing.T) {
	// "reschedule" must not satisfy the schedule group via its substring.
	ext := ExtractIntent("reschedule please")
	assert.Equal(t, IntentReschedule, ext.Intent)

	// Plural "sessions" must not satisfy the singular schedule keyword.
	ext = ExtractIntent("how many sessions do I have remaining?")
	assert.Equal(t, IntentCheckRemaining, ext.Intent)
}

func TestExtractIntentDateAndTimeFragments(t *testing.T) {
	ext := ExtractIntent("Could you do Monday or 12/15/2023, ideally in the morning or at 10 am?")

	assert.Equal(t, []string{"monday", "12/15/2023"}, ext.Dates)
	assert.Equal(t, []string{"10 am", "morning"}, ext.Times)
}

func TestExtractIntentNamePatterns(t *testing.T) {
	cases := []struct {
		utterance string
		name      string
	}{
		{"my name is john doe, thanks", "john doe"},
		{"hi, i'm alice", "alice"},
		{"hello, this is bob brown.", "bob brown"},
		{"no name here", ""},
	}
	for _, tc := range cases {
		ext := ExtractIntent(tc.utterance)
		assert.Equal(t, tc.name, ext.Name, "utterance: %s", tc.utterance)
	}
}

func TestExtractIntentPhoneFormats(t *testing.T) {
	for _, raw := range []string{"555-123-4567", "555.123.4567", "5551234567"} {
		ext := ExtractIntent("you can reach me at " + raw)
		assert.Equal(t, raw, ext.Phone)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5551234567", NormalizePhone("555-123-4567"))
	assert.Equal(t, "5551234567", NormalizePhone("555.123.4567"))
	assert.Equal(t, "5551234567", NormalizePhone("5551234567"))
}
