package conversation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDateLiterals(t *testing.T) {
	day, err := ResolveDate("today", fixedNow)
	require.NoError(t, err)
	assert.True(t, day.Equal(time.Date(2023, 12, 11, 0, 0, 0, 0, time.UTC)))

	day, err = ResolveDate("tomorrow", fixedNow)
	require.NoError(t, err)
	assert.True(t, day.Equal(time.Date(2023, 12, 12, 0, 0, 0, 0, time.UTC)))

	day, err = ResolveDate("next week", fixedNow)
	require.NoError(t, err)
	assert.True(t, day.Equal(time.Date(2023, 12, 18, 0, 0, 0, 0, time.UTC)))
}

func TestResolveDateNumericLayouts(t *testing.T) {
	for _, fragment := range []string{"12/15/2023", "12-15-2023", "12/15/23"} {
		day, err := ResolveDate(fragment, fixedNow)
		require.NoError(t, err, "fragment: %s", fragment)
		assert.Equal(t, time.December, day.Month())
		assert.Equal(t, 15, day.Day())
	}
}

func TestResolveDateWeekday(t *testing.T) {
	day, err := ResolveDate("friday", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, time.Friday, day.Weekday())
	assert.False(t, day.Before(dayOf(fixedNow)))
}

func TestResolveDateUnparseable(t *testing.T) {
	_, err := ResolveDate("13/45/2023", fixedNow)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "13/45/2023", parseErr.Fragment)
}

func TestResolveTimeClockLayouts(t *testing.T) {
	cases := []struct {
		fragment string
		hour     int
		minute   int
	}{
		{"2:30 pm", 14, 30},
		{"2:30pm", 14, 30},
		{"10 am", 10, 0},
		{"4pm", 16, 0},
		{"15:04", 15, 4},
	}
	for _, tc := range cases {
		hour, minute, err := ResolveTime(tc.fragment, fixedNow)
		require.NoError(t, err, "fragment: %s", tc.fragment)
		assert.Equal(t, tc.hour, hour, "fragment: %s", tc.fragment)
		assert.Equal(t, tc.minute, minute, "fragment: %s", tc.fragment)
	}
}

func TestResolveDateTimeCombines(t *testing.T) {
	start, err := ResolveDateTime("tomorrow", "2:30 pm", fixedNow)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2023, 12, 12, 14, 30, 0, 0, time.UTC)))
}
