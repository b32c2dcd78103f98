package models

// Extraction is the result of running the intent extractor over one
// utterance. Dates and times keep every match in textual order; downstream
// only consumes the first of each.
type Extraction struct {
	Intent string   `json:"intent"`
	Dates  []string `json:"dates"`
	Times  []string `json:"times"`
	Phone  string   `json:"phone,omitempty"`
	Name   string   `json:"name,omitempty"`
}

// BookingDraft holds the partially filled booking fields accumulated across
// conversation turns. Fields stay raw text until the resolution step.
type BookingDraft struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Date  string `json:"date,omitempty"`
	Time  string `json:"time,omitempty"`
}

// draftFieldOrder is the fixed order in which missing fields are requested.
var draftFieldOrder = []string{"name", "phone", "date", "time"}

// MissingFields returns the required fields not yet present, in ask order.
func (d *BookingDraft) MissingFields() []string {
	present := map[string]bool{
		"name":  d.Name != "",
		"phone": d.Phone != "",
		"date":  d.Date != "",
		"time":  d.Time != "",
	}
	var missing []string
	for _, f := range draftFieldOrder {
		if !present[f] {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every required field has been collected.
func (d *BookingDraft) Complete() bool {
	return len(d.MissingFields()) == 0
}

// ConversationRequest is the payload for the conversation endpoint.
type ConversationRequest struct {
	ConversationID string `json:"conversationId" binding:"required"`
	Text           string `json:"text" binding:"required"`
}

// ConversationResponse carries the reply text back to the call transport.
type ConversationResponse struct {
	ConversationID string `json:"conversationId"`
	Reply          string `json:"reply"`
	Intent         string `json:"intent"`
}
