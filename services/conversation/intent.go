package conversation

import (
	"regexp"
	"strings"

	"coachline/models"
)

// Intent tags produced by ExtractIntent.
const (
	IntentSchedule          = "schedule"
	IntentReschedule        = "reschedule"
	IntentCancel            = "cancel"
	IntentCheckAvailability = "check_availability"
	IntentCheckRemaining    = "check_remaining"
	IntentGeneral           = "general"
)

// intentKeywords is evaluated in order; the first matching group wins.
// Keywords match on word boundaries so "reschedule" is never shadowed by
// "schedule".
var intentKeywords = []struct {
	intent  string
	pattern *regexp.Regexp
}{
	{IntentSchedule, regexp.MustCompile(`\b(schedule|book|session|training)\b`)},
	{IntentReschedule, regexp.MustCompile(`\b(reschedule|change|move)\b`)},
	{IntentCancel, regexp.MustCompile(`\b(cancel|remove)\b`)},
	{IntentCheckAvailability, regexp.MustCompile(`\b(available|availability|free)\b`)},
	{IntentCheckRemaining, regexp.MustCompile(`\b(remaining|sessions left|how many)\b`)},
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
	regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`),
	regexp.MustCompile(`\b(today|tomorrow|next week)\b`),
}

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2}:\d{2}\s*(?:am|pm))\b`),
	regexp.MustCompile(`\b(\d{1,2}\s*(?:am|pm))\b`),
	regexp.MustCompile(`\b(morning|afternoon|evening)\b`),
}

var phonePattern = regexp.MustCompile(`\b(\d{3}[-.]?\d{3}[-.]?\d{4})\b`)

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`my name is ([a-z][a-z\s]*)`),
	regexp.MustCompile(`\bi'm ([a-z][a-z\s]*)`),
	regexp.MustCompile(`\bthis is ([a-z][a-z\s]*)`),
}

// ExtractIntent parses a free-text utterance into a coarse intent tag plus
// candidate date, time, phone, and name fragments. It is a pure function and
// case-insensitive; fragments are not validated as real dates or times here.
func ExtractIntent(utterance string) models.Extraction {
	lower := strings.ToLower(utterance)

	ext := models.Extraction{Intent: IntentGeneral}
	for _, group := range intentKeywords {
		if group.pattern.MatchString(lower) {
			ext.Intent = group.intent
			break
		}
	}

	for _, p := range datePatterns {
		for _, m := range p.FindAllStringSubmatch(lower, -1) {
			ext.Dates = append(ext.Dates, m[1])
		}
	}
	for _, p := range timePatterns {
		for _, m := range p.FindAllStringSubmatch(lower, -1) {
			ext.Times = append(ext.Times, m[1])
		}
	}

	if m := phonePattern.FindStringSubmatch(lower); m != nil {
		ext.Phone = m[1]
	}

	for _, p := range namePatterns {
		if m := p.FindStringSubmatch(lower); m != nil {
			ext.Name = strings.TrimSpace(m[1])
			break
		}
	}

	return ext
}

// NormalizePhone strips separators, keeping digits only.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
