// File: coachline/handlers/bundle.go
package handlers

import (
	clientRepoPkg "coachline/database/repository/client"
	sessionRepoPkg "coachline/database/repository/session"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all your endpoint handlers into one struct.
type HandlerBundle struct {
	ClientRepo  clientRepoPkg.ClientRepository
	SessionRepo sessionRepoPkg.SessionRepository

	// Conversation endpoints
	ConversationMessageHandler gin.HandlerFunc

	// Session endpoints
	UpcomingSessionsHandler  gin.HandlerFunc
	PendingRemindersHandler  gin.HandlerFunc
	SendRemindersHandler     gin.HandlerFunc
	ClientSessionsHandler    gin.HandlerFunc
	RemainingSessionsHandler gin.HandlerFunc

	// Outbound call endpoints
	OutboundCallHandler gin.HandlerFunc

	// Health endpoint
	HealthHandler gin.HandlerFunc
}
