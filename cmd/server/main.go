package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitnesshub/fitnesshub-api/internal/api"
	"github.com/fitnesshub/fitnesshub-api/internal/config"
	"github.com/fitnesshub/fitnesshub-api/internal/payments"
	"github.com/fitnesshub/fitnesshub-api/internal/repository/mongo"
	"github.com/fitnesshub/fitnesshub-api/internal/service"
	"github.com/fitnesshub/fitnesshub-api/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	// --- Logging ---
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("FATAL: Could not initialize logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("starting fitnesshub api", zap.String("address", cfg.Server.Address))

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established", zap.String("database", cfg.Database.Name))

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureTrainerIndexes(ctx, appDB.Collection("trainers"))
		mongo.EnsureApprovedTrainerIndexes(ctx, appDB.Collection("approvedTrainers"))
		mongo.EnsureClassIndexes(ctx, appDB.Collection("classes"))
		mongo.EnsureSlotIndexes(ctx, appDB.Collection("slots"))
		mongo.EnsureReviewIndexes(ctx, appDB.Collection("reviews"))
		mongo.EnsurePaymentIndexes(ctx, appDB.Collection("payments"))
		mongo.EnsureSubscriberIndexes(ctx, appDB.Collection("subscribers"))
		logger.Info("index creation process completed")
	}()

	// --- Initialize Storage & Payment Gateway ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		logger.Fatal("failed to initialize S3 storage", zap.Error(err))
	}
	gateway, err := payments.NewStripeGateway(cfg.Stripe.SecretKey)
	if err != nil {
		logger.Fatal("failed to initialize payment gateway", zap.Error(err))
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	appRepo := mongo.NewMongoTrainerApplicationRepository(appDB)
	approvedRepo := mongo.NewMongoApprovedTrainerRepository(appDB)
	rejectedRepo := mongo.NewMongoRejectedTrainerRepository(appDB)
	classRepo := mongo.NewMongoClassRepository(appDB)
	slotRepo := mongo.NewMongoSlotRepository(appDB)
	postRepo := mongo.NewMongoForumPostRepository(appDB)
	reviewRepo := mongo.NewMongoReviewRepository(appDB)
	paymentRepo := mongo.NewMongoPaymentRepository(appDB)
	subscriberRepo := mongo.NewMongoSubscriberRepository(appDB)
	txnRunner := mongo.NewTxnRunner(dbClient)

	// --- Initialize Services ---
	svcs := api.Services{
		Auth:     service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		User:     service.NewUserService(userRepo, subscriberRepo),
		Trainer:  service.NewTrainerService(appRepo, approvedRepo, rejectedRepo, userRepo, txnRunner),
		Schedule: service.NewScheduleService(classRepo, slotRepo),
		Forum:    service.NewForumService(postRepo),
		Review:   service.NewReviewService(reviewRepo),
		Payment:  service.NewPaymentService(paymentRepo, gateway),
		Upload:   service.NewUploadService(fileStorage),
	}

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware
	api.SetupRoutes(router, svcs, logger)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen and serve error", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("address", cfg.Server.Address))

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
