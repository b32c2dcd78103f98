package routes

import (
	"time"

	"coachline/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterConversationRoutes registers the dialogue endpoint.
func RegisterConversationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/conversation")
	{
		api.POST("/message", hb.ConversationMessageHandler)
	}
}

// RegisterSessionRoutes registers session listing and reminder endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.GET("/upcoming", hb.UpcomingSessionsHandler)
		api.GET("/reminders", hb.PendingRemindersHandler)
		api.POST("/send-reminders", hb.SendRemindersHandler)
	}
}

// RegisterClientRoutes registers per-client lookup endpoints.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/clients")
	{
		api.GET("/:id/sessions", hb.ClientSessionsHandler)
		api.GET("/:id/remaining-sessions", hb.RemainingSessionsHandler)
	}
}

// RegisterCallRoutes registers outbound call campaign endpoints.
func RegisterCallRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/calls")
	{
		api.POST("/outbound", hb.OutboundCallHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterConversationRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterClientRoutes(r, hb)
	RegisterCallRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
