// File: coachline/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coachline/config"
	"coachline/cron"
	"coachline/database"
	appointmentRepoPkg "coachline/database/repository/appointment"
	clientRepoPkg "coachline/database/repository/client"
	sessionRepoPkg "coachline/database/repository/session"
	trainerRepoPkg "coachline/database/repository/trainer"
	"coachline/handlers"
	"coachline/middleware"
	"coachline/routes"
	"coachline/services/conversation"
	"coachline/services/outreach"
	"coachline/services/scheduling"
	"coachline/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitContextCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()
	trainerRepo := trainerRepoPkg.NewMongoTrainerRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()

	// services.
	schedulingEngine := scheduling.NewDefaultEngine(
		sessionRepo,
		appointmentRepo,
		clientRepo,
		trainerRepo,
		config.AppConfig.SlotGranularityMin,
	)

	sessionFlow := &conversation.SessionFlow{
		Clients:   clientRepo,
		Engine:    schedulingEngine,
		TrainerID: config.AppConfig.DefaultTrainerID,
		Location:  config.AppConfig.DefaultLocation,
		Duration:  60,
	}

	ctxStore := conversation.NewRedisContextStore(
		utils.GetContextCacheClient(),
		time.Duration(config.AppConfig.ContextTTLMinutes)*time.Minute,
	)
	dialogueEngine := &conversation.Engine{
		Store:     ctxStore,
		Flow:      sessionFlow,
		Scheduler: schedulingEngine,
		Sessions:  sessionRepo,
		Clients:   clientRepo,
		TrainerID: config.AppConfig.DefaultTrainerID,
	}

	dispatcher := outreach.NewHTTPDispatcher(sessionRepo, clientRepo)
	reminderService := &outreach.ReminderService{
		Sessions:   sessionRepo,
		Dispatcher: dispatcher,
		LeadHours:  config.AppConfig.ReminderLeadHours,
		CallDelay:  time.Duration(config.AppConfig.CallDelaySeconds) * time.Second,
	}

	// Background workers.
	cron.InitReminderWorker(sessionRepo, dispatcher)
	cron.StartReminderSweep(reminderService)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetContextCacheClient()},
		database.MongoClient,
	)

	conversationHandler := handlers.NewConversationHandler(dialogueEngine)
	sessionHandler := handlers.NewSessionHandler(sessionRepo, clientRepo, reminderService)
	callHandler := handlers.NewCallHandler(reminderService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ClientRepo:  clientRepo,
		SessionRepo: sessionRepo,

		// Conversation endpoints.
		ConversationMessageHandler: conversationHandler.MessageHandler,

		// Session endpoints.
		UpcomingSessionsHandler:  sessionHandler.UpcomingSessionsHandler,
		PendingRemindersHandler:  sessionHandler.PendingRemindersHandler,
		SendRemindersHandler:     sessionHandler.SendRemindersHandler,
		ClientSessionsHandler:    sessionHandler.ClientSessionsHandler,
		RemainingSessionsHandler: sessionHandler.RemainingSessionsHandler,

		// Outbound call endpoints.
		OutboundCallHandler: callHandler.OutboundCallHandler,

		// Health endpoint.
		HealthHandler: handlers.HealthHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
