package handlers

import (
	"net/http"

	"coachline/services/outreach"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CallHandler serves ad-hoc outbound call campaigns.
type CallHandler struct {
	Reminders *outreach.ReminderService
}

func NewCallHandler(reminders *outreach.ReminderService) *CallHandler {
	return &CallHandler{Reminders: reminders}
}

// OutboundCallHandler places scheduling or follow-up calls for the given
// targets. Type "scheduling" takes phone numbers, "follow-up" takes client IDs.
func (h *CallHandler) OutboundCallHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Type      string   `json:"type" binding:"required"`
		Phones    []string `json:"phones"`
		ClientIDs []string `json:"clientIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid outbound call request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var (
		stats interface{}
		err   error
	)
	switch req.Type {
	case "scheduling":
		if len(req.Phones) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "scheduling calls require phones"})
			return
		}
		stats, err = h.Reminders.BulkScheduling(c.Request.Context(), req.Phones)
	case "follow-up":
		if len(req.ClientIDs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "follow-up calls require clientIds"})
			return
		}
		stats, err = h.Reminders.BulkFollowUp(c.Request.Context(), req.ClientIDs)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown call type: " + req.Type})
		return
	}

	if err != nil {
		logger.Error("Outbound call campaign failed", zap.String("type", req.Type), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Outbound call campaign failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
