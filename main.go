// File: voltpath/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voltpath/config"
	"voltpath/cron"
	"voltpath/database"
	consentRepoPkg "voltpath/database/repository/consent"
	profileRepoPkg "voltpath/database/repository/profile"
	"voltpath/handlers"
	"voltpath/middleware"
	"voltpath/routes"
	"voltpath/services/auth"
	"voltpath/services/checkout"
	"voltpath/services/notification"
	"voltpath/services/onboarding"
	"voltpath/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.InitStagingCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	profileRepo := profileRepoPkg.NewMongoProfileRepo()
	consentRepo := consentRepoPkg.NewMongoConsentRepo()

	// background task queue client.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	// stores and collaborators.
	sessionStore := &onboarding.RedisSessionStore{Client: utils.GetSessionCacheClient()}
	stagingStore := &onboarding.RedisStagingStore{Client: utils.GetStagingCacheClient()}
	accountProvider := auth.NewFirebaseAccountProvider(utils.AuthClient)
	dispatcher := notification.NewSMTPDispatcher(notification.SMTPConfig{
		Host:     config.AppConfig.SMTPHost,
		Port:     config.AppConfig.SMTPPort,
		Username: config.AppConfig.SMTPUsername,
		Password: config.AppConfig.SMTPPassword,
		From:     config.AppConfig.SMTPFrom,
	})

	// services.
	onboardingService := &onboarding.DefaultOnboardingService{
		Profiles:      profileRepo,
		Accounts:      accountProvider,
		Sessions:      sessionStore,
		Staging:       stagingStore,
		Queue:         queueClient,
		CheckoutRoute: config.AppConfig.CheckoutRoute,
	}
	checkoutService := &checkout.DefaultCheckoutService{
		Staging:    stagingStore,
		SuccessURL: config.AppConfig.CheckoutSuccessURL,
		CancelURL:  config.AppConfig.CheckoutCancelURL,
	}

	onboardingHandler := handlers.NewOnboardingHandler(onboardingService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	profileHandler := handlers.NewProfileHandler(profileRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Onboarding endpoints.
		StartOnboardingHandler:      onboardingHandler.StartHandler,
		GetOnboardingSessionHandler: onboardingHandler.GetSessionHandler,
		SubmitAccountHandler:        onboardingHandler.SubmitAccountHandler,
		SubmitProfileHandler:        onboardingHandler.SubmitProfileHandler,
		BackHandler:                 onboardingHandler.BackHandler,
		SubmitHandler:               onboardingHandler.SubmitHandler,

		// Checkout endpoints.
		CreateCheckoutSessionHandler: checkoutHandler.CreateSessionHandler,

		// Profile endpoints.
		GetProfileByIDHandler: profileHandler.GetProfileByIDHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker for the best-effort side of the flow.
	cron.InitOnboardingWorker(consentRepo, profileRepo, dispatcher, stagingStore)

	utils.StartHealthMonitor(map[string]*redis.Client{
		"session": utils.GetSessionCacheClient(),
		"staging": utils.GetStagingCacheClient(),
	}, database.MongoClient)

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
