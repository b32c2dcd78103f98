package handlers

import (
	"errors"
	"net/http"
	"strconv"

	clientRepoPkg "coachline/database/repository/client"
	sessionRepoPkg "coachline/database/repository/session"
	"coachline/services/outreach"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler serves session listing and reminder endpoints.
type SessionHandler struct {
	Sessions  sessionRepoPkg.SessionRepository
	Clients   clientRepoPkg.ClientRepository
	Reminders *outreach.ReminderService
}

func NewSessionHandler(sessions sessionRepoPkg.SessionRepository, clients clientRepoPkg.ClientRepository, reminders *outreach.ReminderService) *SessionHandler {
	return &SessionHandler{Sessions: sessions, Clients: clients, Reminders: reminders}
}

// UpcomingSessionsHandler lists sessions starting within the next N days.
func (h *SessionHandler) UpcomingSessionsHandler(c *gin.Context) {
	logger := getLogger(c)

	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days parameter"})
			return
		}
		days = parsed
	}

	sessions, err := h.Sessions.GetUpcoming(c.Request.Context(), c.Query("trainerId"), days)
	if err != nil {
		logger.Error("Failed to list upcoming sessions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list upcoming sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
}

// PendingRemindersHandler lists sessions currently inside the reminder window.
func (h *SessionHandler) PendingRemindersHandler(c *gin.Context) {
	logger := getLogger(c)

	sessions, err := h.Reminders.SessionsNeedingReminders(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list sessions needing reminders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending reminders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
}

// SendRemindersHandler triggers one reminder sweep and reports the stats.
func (h *SessionHandler) SendRemindersHandler(c *gin.Context) {
	logger := getLogger(c)

	stats, err := h.Reminders.ProcessReminderQueue(c.Request.Context())
	if err != nil {
		logger.Error("Reminder sweep failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reminder sweep failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ClientSessionsHandler lists a client's sessions, newest first.
func (h *SessionHandler) ClientSessionsHandler(c *gin.Context) {
	logger := getLogger(c)
	clientID := c.Param("id")

	limit := int64(20)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	sessions, err := h.Sessions.GetForClient(c.Request.Context(), clientID, limit)
	if err != nil {
		logger.Error("Failed to list client sessions", zap.String("clientId", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list client sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientId": clientID, "sessions": sessions, "count": len(sessions)})
}

// RemainingSessionsHandler returns the client's package balance.
func (h *SessionHandler) RemainingSessionsHandler(c *gin.Context) {
	logger := getLogger(c)
	clientID := c.Param("id")

	client, err := h.Clients.GetByID(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, clientRepoPkg.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		logger.Error("Failed to fetch client", zap.String("clientId", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch client"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientId":          client.ID,
		"name":              client.Name,
		"sessionsRemaining": client.SessionsRemaining,
		"packageSize":       client.PackageSize,
		"packageTracked":    client.HasBoundedPackage(),
	})
}
