// File: freightbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freightbook/config"
	"freightbook/cron"
	"freightbook/database"
	auditRepoPkg "freightbook/database/repository/audit"
	bookingRepoPkg "freightbook/database/repository/booking"
	"freightbook/handlers"
	"freightbook/routes"
	"freightbook/services/audit"
	"freightbook/services/booking"
	"freightbook/services/catalog"
	"freightbook/services/document"
	"freightbook/services/intent"
	"freightbook/services/notification"
	"freightbook/services/security"
	"freightbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	documentStore, err := document.NewCloudinaryStore()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize document store: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRequestRepo()
	auditRepo := auditRepoPkg.NewMongoAuditRepo()

	// services.
	gate := security.NewDefaultGate(logger)
	auditLogger := audit.NewDefaultLogger(auditRepo, gate, logger)
	dispatcher := notification.NewAsynqDispatcher(logger)
	defer dispatcher.Close()

	bookingService := booking.NewDefaultBookingService(
		bookingRepo,
		auditRepo,
		catalog.NewHTTPClient(logger),
		booking.NewHTTPVerifier(logger),
		documentStore,
		document.NewHTTPChecker(),
		gate,
		auditLogger,
		dispatcher,
		utils.GetCacheClient(),
		logger,
	)

	extractor, err := intent.NewGeminiExtractor(logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize intent extractor: %v", err)
	}

	// Background notification worker.
	cron.InitNotifyWorker(notification.NewFCMSender(logger))

	handlerBundle := handlers.NewHandlerBundle(bookingService, extractor)
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
