// File: caredesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"caredesk/config"
	"caredesk/cron"
	"caredesk/handlers"
	"caredesk/middleware"
	"caredesk/routes"
	"caredesk/services/allocation"
	"caredesk/services/directory"
	"caredesk/services/report"
	"caredesk/services/session"
	"caredesk/upstream"
	"caredesk/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitAuthCache()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Upstream hospital API client.
	upstreamClient := upstream.NewClient(
		config.AppConfig.UpstreamBaseURL,
		time.Duration(config.AppConfig.UpstreamTimeoutSeconds)*time.Second,
	)

	// Stores.
	sessionStore := session.NewStore(utils.GetAuthCacheClient())
	allocationStore := allocation.NewRedisSessionStore(utils.GetSessionCacheClient())

	// Services.
	directoryService := &directory.DefaultDirectoryService{
		Source: upstreamClient,
	}
	allocationService := &allocation.DefaultAllocationService{
		Store:    allocationStore,
		Gateway:  upstreamClient,
		Reloader: directoryService,
		Logger:   logger,
	}

	// Report delivery worker + queue client.
	cron.InitReportWorker(report.SMTPMailer{})
	taskClient := cron.NewTaskClient()

	// Handlers.
	authHandler := handlers.NewAuthHandler(upstreamClient, sessionStore, logger)
	patientHandler := handlers.NewPatientHandler(directoryService, upstreamClient, logger)
	paymentHandler := handlers.NewPaymentHandler(allocationService, directoryService, logger)
	appointmentHandler := handlers.NewAppointmentHandler(upstreamClient, logger)
	exportHandler := handlers.NewExportHandler(directoryService, taskClient, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions: sessionStore,

		// Auth endpoints.
		LoginHandler:  authHandler.LoginHandler,
		LogoutHandler: authHandler.LogoutHandler,

		// Patient dashboard endpoints.
		ListPatientsHandler:    patientHandler.ListPatientsHandler,
		RefreshPatientsHandler: patientHandler.RefreshPatientsHandler,
		RegisterPatientHandler: patientHandler.RegisterPatientHandler,

		// Export endpoints.
		ExportCSVHandler:   exportHandler.ExportCSVHandler,
		ExportExcelHandler: exportHandler.ExportExcelHandler,
		EmailReportHandler: exportHandler.EmailReportHandler,

		// Payment session endpoints.
		OpenPaymentSession:   paymentHandler.OpenSessionHandler,
		UpdatePaymentSession: paymentHandler.UpdateSessionHandler,
		GetPaymentSession:    paymentHandler.GetSessionHandler,
		SubmitPaymentSession: paymentHandler.SubmitSessionHandler,
		CancelPaymentSession: paymentHandler.CancelSessionHandler,

		// Appointment endpoints.
		UpcomingAppointments:    appointmentHandler.UpcomingHandler,
		ListAppointments:        appointmentHandler.ListHandler,
		UpdateAppointmentStatus: appointmentHandler.UpdateStatusHandler,
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
