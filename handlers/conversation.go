package handlers

import (
	"net/http"

	"coachline/models"
	"coachline/services/conversation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConversationHandler serves the dialogue endpoint backing the call transport.
type ConversationHandler struct {
	Engine *conversation.Engine
}

func NewConversationHandler(engine *conversation.Engine) *ConversationHandler {
	return &ConversationHandler{Engine: engine}
}

// MessageHandler processes one caller utterance and returns the reply.
func (h *ConversationHandler) MessageHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.ConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid conversation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Engine.ProcessMessage(c.Request.Context(), req.ConversationID, req.Text)
	if err != nil {
		logger.Error("Failed to process conversation message",
			zap.String("conversationId", req.ConversationID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
