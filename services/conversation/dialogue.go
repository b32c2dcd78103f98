package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	clientRepo "coachline/database/repository/client"
	sessionRepo "coachline/database/repository/session"
	"coachline/models"
	"coachline/services/scheduling"
	"coachline/utils"

	"go.uber.org/zap"
)

// Engine drives the slot-filling booking conversation. One conversation id
// is only ever mutated by its own turns; distinct conversations may run
// concurrently against the shared store.
type Engine struct {
	Store     ContextStore
	Flow      BookingFlow
	Scheduler scheduling.Engine
	Sessions  sessionRepo.SessionRepository
	Clients   clientRepo.ClientRepository
	TrainerID string

	// Now is injectable for tests; time.Now when nil.
	Now func() time.Time
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// ProcessMessage runs one conversational turn and returns the reply text.
func (e *Engine) ProcessMessage(ctx context.Context, conversationID, text string) (models.ConversationResponse, error) {
	ext := ExtractIntent(text)

	var reply string
	switch ext.Intent {
	case IntentReschedule:
		reply = e.handleReschedule(ctx, ext)
	case IntentCancel:
		reply = e.handleCancel(ctx, ext)
	case IntentCheckAvailability:
		reply = e.handleAvailability(ctx, ext)
	case IntentCheckRemaining:
		reply = e.handleRemaining(ctx, ext)
	default:
		var err error
		reply, err = e.handleSchedule(ctx, conversationID, ext)
		if err != nil {
			return models.ConversationResponse{}, err
		}
	}

	return models.ConversationResponse{
		ConversationID: conversationID,
		Reply:          reply,
		Intent:         ext.Intent,
	}, nil
}

// handleSchedule merges newly extracted fields into the conversation's draft
// and either prompts for the first missing field or attempts the booking.
func (e *Engine) handleSchedule(ctx context.Context, conversationID string, ext models.Extraction) (string, error) {
	draft, err := e.Store.Get(ctx, conversationID)
	if err != nil {
		return "", fmt.Errorf("load conversation context: %w", err)
	}

	// A bare greeting with nothing to merge and nothing collected yet gets
	// the capability overview instead of a name prompt.
	if ext.Intent == IntentGeneral && draftEmpty(draft) && extractionEmpty(ext) {
		return "I can help you schedule, reschedule, or cancel training sessions. I can also check your remaining sessions. What would you like to do?", nil
	}

	// Merge fills absent fields only; a re-mentioned field never overwrites
	// the previously captured value.
	if draft.Name == "" && ext.Name != "" {
		draft.Name = ext.Name
	}
	if draft.Phone == "" && ext.Phone != "" {
		draft.Phone = ext.Phone
	}
	if draft.Date == "" && len(ext.Dates) > 0 {
		draft.Date = ext.Dates[0]
	}
	if draft.Time == "" && len(ext.Times) > 0 {
		draft.Time = ext.Times[0]
	}
	if err := e.Store.Set(ctx, conversationID, draft); err != nil {
		return "", fmt.Errorf("save conversation context: %w", err)
	}

	if !draft.Complete() {
		return promptFor(draft.MissingFields()[0]), nil
	}

	return e.resolveAndCommit(ctx, conversationID, draft)
}

func (e *Engine) resolveAndCommit(ctx context.Context, conversationID string, draft *models.BookingDraft) (string, error) {
	logger := utils.GetLogger()

	start, err := ResolveDateTime(draft.Date, draft.Time, e.now())
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			// The captured fragments are unusable; drop them so the caller
			// can supply fresh ones, but keep name and phone.
			draft.Date = ""
			draft.Time = ""
			if setErr := e.Store.Set(ctx, conversationID, draft); setErr != nil {
				return "", fmt.Errorf("save conversation context: %w", setErr)
			}
			return "I'm sorry, there was an issue scheduling your session. Could you please provide the date and time in a different format? For example: 'Monday at 2 PM' or '12/15/2023 at 3:30 PM'", nil
		}
		return "", err
	}

	client, err := e.Flow.ResolveClient(ctx, draft.Name, draft.Phone)
	if err != nil {
		logger.Error("failed to resolve client", zap.String("phone", draft.Phone), zap.Error(err))
		return "I'm sorry, there was an issue creating your client profile. Please try again.", nil
	}

	if err := e.Flow.CheckQuota(ctx, client); err != nil {
		var exhausted *scheduling.NoSessionsRemainingError
		if errors.As(err, &exhausted) {
			// Context stays intact; the client may retry after topping up.
			return "I see you don't have any remaining sessions in your package. Please contact your trainer to purchase more sessions before scheduling.", nil
		}
		return "", err
	}

	remaining, err := e.Flow.CommitBooking(ctx, client, start)
	if err != nil {
		var unavailable *scheduling.SlotUnavailableError
		var exhausted *scheduling.NoSessionsRemainingError
		switch {
		case errors.As(err, &unavailable):
			// Free the time fields so an alternate time can be merged in.
			draft.Date = ""
			draft.Time = ""
			if setErr := e.Store.Set(ctx, conversationID, draft); setErr != nil {
				return "", fmt.Errorf("save conversation context: %w", setErr)
			}
			return "That time is already booked. Could you suggest another date and time that works for you?", nil
		case errors.As(err, &exhausted):
			return "I see you don't have any remaining sessions in your package. Please contact your trainer to purchase more sessions before scheduling.", nil
		default:
			logger.Error("booking commit failed", zap.String("conversationID", conversationID), zap.Error(err))
			return "I'm sorry, there was an issue scheduling your session. Please try again.", nil
		}
	}

	if err := e.Store.Clear(ctx, conversationID); err != nil {
		logger.Warn("failed to clear conversation context", zap.String("conversationID", conversationID), zap.Error(err))
	}

	confirmation := fmt.Sprintf("Perfect! I've scheduled your training session for %s.",
		start.Format("Monday, January 2 at 3:04 PM"))
	if remaining >= 0 {
		confirmation += fmt.Sprintf(" You have %d sessions remaining in your package.", remaining)
	}
	confirmation += " You'll receive a confirmation shortly."
	return confirmation, nil
}

// handleReschedule is a shallow single-turn handler: it acts only when the
// utterance itself carries phone, date, and time; otherwise it prompts.
func (e *Engine) handleReschedule(ctx context.Context, ext models.Extraction) string {
	if ext.Phone == "" || len(ext.Dates) == 0 || len(ext.Times) == 0 {
		return "I can help you reschedule your training session. Could you please provide your phone number and the new date and time you'd prefer?"
	}

	newStart, err := ResolveDateTime(ext.Dates[0], ext.Times[0], e.now())
	if err != nil {
		return "I'm sorry, I couldn't understand that date and time. Could you please provide them in a different format?"
	}

	session := e.nextUpcomingSession(ctx, ext.Phone)
	if session == nil {
		return "I couldn't find an upcoming session for that phone number. Could you please verify it?"
	}

	if err := e.Scheduler.RescheduleSession(ctx, session.ID, newStart); err != nil {
		var unavailable *scheduling.SlotUnavailableError
		if errors.As(err, &unavailable) {
			return "That time is already booked. Could you suggest another time for your session?"
		}
		return "I'm sorry, there was an issue rescheduling your session. Please try again."
	}

	return fmt.Sprintf("Done! Your session has been moved to %s.", newStart.Format("Monday, January 2 at 3:04 PM"))
}

func (e *Engine) handleCancel(ctx context.Context, ext models.Extraction) string {
	if ext.Phone == "" {
		return "I can help you cancel your training session. Could you please provide your phone number so I can find your upcoming sessions?"
	}

	session := e.nextUpcomingSession(ctx, ext.Phone)
	if session == nil {
		return "I couldn't find an upcoming session for that phone number. Could you please verify it?"
	}

	if err := e.Scheduler.CancelSession(ctx, session.ID, "cancelled by client over the phone"); err != nil {
		return "I'm sorry, there was an issue cancelling your session. Please try again."
	}

	return fmt.Sprintf("Your session on %s has been cancelled.", session.DateTime.Format("Monday, January 2 at 3:04 PM"))
}

func (e *Engine) handleAvailability(ctx context.Context, ext models.Extraction) string {
	if len(ext.Dates) == 0 {
		return "What date would you like to check availability for?"
	}

	day, err := ResolveDate(ext.Dates[0], e.now())
	if err != nil {
		return "I'm sorry, I couldn't understand that date. Could you please specify the date you'd like to check availability for?"
	}

	slots, err := e.Scheduler.AvailableSlots(ctx, e.TrainerID, day, 60)
	if err != nil {
		utils.GetLogger().Error("availability check failed", zap.Error(err))
		return "I'm sorry, I couldn't check availability right now. Please try again."
	}
	return FormatAvailableSlots(slots)
}

func (e *Engine) handleRemaining(ctx context.Context, ext models.Extraction) string {
	if ext.Phone == "" {
		return "Could you please provide your phone number so I can check your remaining sessions?"
	}

	client, err := e.Clients.GetByPhone(ctx, NormalizePhone(ext.Phone))
	if err != nil {
		return "I couldn't find your client profile. Could you please verify your phone number?"
	}
	return fmt.Sprintf("You have %d training sessions remaining in your package.", client.SessionsRemaining)
}

// nextUpcomingSession finds the client's soonest active future session.
func (e *Engine) nextUpcomingSession(ctx context.Context, phone string) *models.Session {
	client, err := e.Clients.GetByPhone(ctx, NormalizePhone(phone))
	if err != nil {
		return nil
	}
	sessions, err := e.Sessions.GetForClient(ctx, client.ID, 20)
	if err != nil {
		return nil
	}

	now := e.now()
	var next *models.Session
	for i := range sessions {
		s := &sessions[i]
		if !s.IsActive() || s.DateTime.Before(now) {
			continue
		}
		if next == nil || s.DateTime.Before(next.DateTime) {
			next = s
		}
	}
	return next
}

// FormatAvailableSlots renders at most five slots for a voice reply.
func FormatAvailableSlots(slots []time.Time) string {
	if len(slots) == 0 {
		return "No available slots found for the requested date."
	}
	if len(slots) > 5 {
		slots = slots[:5]
	}
	formatted := make([]string, len(slots))
	for i, s := range slots {
		formatted[i] = s.Format("3:04 PM")
	}
	return "Available times: " + strings.Join(formatted, ", ")
}

func promptFor(field string) string {
	switch field {
	case "name":
		return "I'd be happy to schedule a training session for you. Could you please tell me your name?"
	case "phone":
		return "Great! Could you please provide your phone number for the session?"
	case "date":
		return "What date would you prefer for your training session?"
	default:
		return "What time would work best for you?"
	}
}

func draftEmpty(d *models.BookingDraft) bool {
	return d.Name == "" && d.Phone == "" && d.Date == "" && d.Time == ""
}

func extractionEmpty(ext models.Extraction) bool {
	return ext.Name == "" && ext.Phone == "" && len(ext.Dates) == 0 && len(ext.Times) == 0
}
