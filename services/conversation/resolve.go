package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ParseError signals that a collected date or time fragment could not be
// resolved to an instant. The caller keeps the conversation context and
// re-prompts with an alternate-format hint.
type ParseError struct {
	Fragment string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse date/time fragment %q", e.Fragment)
}

// nlParser resolves free-form fragments like "monday" or "3:30 pm".
var nlParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

var numericDateLayouts = []string{
	"1/2/2006", "1-2-2006", "1/2/06", "1-2-06",
}

var clockLayouts = []string{
	"3:04pm", "3:04 pm", "3pm", "3 pm", "15:04",
}

// ResolveDate maps a date fragment to a calendar day. "today" and "tomorrow"
// are literal offsets from now; everything else goes through numeric layouts
// and then the natural-language parser.
func ResolveDate(fragment string, now time.Time) (time.Time, error) {
	f := strings.ToLower(strings.TrimSpace(fragment))

	switch f {
	case "today":
		return dayOf(now), nil
	case "tomorrow":
		return dayOf(now.AddDate(0, 0, 1)), nil
	case "next week":
		return dayOf(now.AddDate(0, 0, 7)), nil
	}

	for _, layout := range numericDateLayouts {
		if t, err := time.ParseInLocation(layout, f, now.Location()); err == nil {
			return dayOf(t), nil
		}
	}

	if r, err := nlParser.Parse(f, now); err == nil && r != nil {
		return dayOf(r.Time), nil
	}
	return time.Time{}, &ParseError{Fragment: fragment}
}

// ResolveTime maps a time fragment to a clock time on the reference day.
func ResolveTime(fragment string, now time.Time) (hour, minute int, err error) {
	f := strings.ToLower(strings.TrimSpace(fragment))

	for _, layout := range clockLayouts {
		if t, parseErr := time.Parse(layout, f); parseErr == nil {
			return t.Hour(), t.Minute(), nil
		}
	}

	if r, parseErr := nlParser.Parse(f, now); parseErr == nil && r != nil {
		return r.Time.Hour(), r.Time.Minute(), nil
	}
	return 0, 0, &ParseError{Fragment: fragment}
}

// ResolveDateTime combines a date fragment and a time fragment into one
// absolute instant in now's location.
func ResolveDateTime(dateFragment, timeFragment string, now time.Time) (time.Time, error) {
	day, err := ResolveDate(dateFragment, now)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := ResolveTime(timeFragment, now)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location()), nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
