package api

import (
	"net/http"

	"github.com/fitnesshub/fitnesshub-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services bundles everything the route table needs.
type Services struct {
	Auth     service.AuthService
	User     service.UserService
	Trainer  service.TrainerService
	Schedule service.ScheduleService
	Forum    service.ForumService
	Review   service.ReviewService
	Payment  service.PaymentService
	Upload   service.UploadService
}

// SetupRoutes registers the full HTTP surface on the router. The path shapes
// are kept exactly as the frontend consumes them, mixed prefixes included.
func SetupRoutes(router *gin.Engine, svcs Services, log *zap.Logger) {
	authHandler := NewAuthHandler(svcs.Auth, log)
	userHandler := NewUserHandler(svcs.User, log)
	trainerHandler := NewTrainerHandler(svcs.Trainer, log)
	scheduleHandler := NewScheduleHandler(svcs.Schedule, log)
	forumHandler := NewForumHandler(svcs.Forum, log)
	reviewHandler := NewReviewHandler(svcs.Review, log)
	paymentHandler := NewPaymentHandler(svcs.Payment, log)
	uploadHandler := NewUploadHandler(svcs.Upload, log)

	authMiddleware := AuthMiddleware(svcs.Auth.GetJWTSecret())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// --- Public routes ---
	router.POST("/jwt", authHandler.IssueToken)
	router.GET("/logout", authHandler.Logout)

	router.POST("/users", userHandler.Register)
	router.GET("/users/exist/:email", userHandler.Exists)
	router.GET("/users/role/:email", userHandler.Role)

	router.POST("/trainers", trainerHandler.Apply)
	router.GET("/trainers", trainerHandler.ListPending)
	router.GET("/trainersByEmail/:email", trainerHandler.GetByEmail)
	router.GET("/trainers/:id", trainerHandler.GetByID)

	router.GET("/approvedTrainers", trainerHandler.ListApproved)
	router.GET("/approvedTrainers/:id", trainerHandler.GetApprovedByID)
	router.GET("/approvedTrainer/:email", trainerHandler.GetApprovedByEmail)

	router.GET("/classes", scheduleHandler.ListClasses)
	router.GET("/allClasses", scheduleHandler.ListAllClasses)
	router.GET("/classes/search", scheduleHandler.SearchClasses)
	router.GET("/featured-classes", scheduleHandler.FeaturedClasses)

	router.GET("/slots", scheduleHandler.ListSlots)
	router.GET("/slots/byTrainer/:trainerId", scheduleHandler.SlotByTrainer)
	router.GET("/slots/byEmail/:email", scheduleHandler.SlotsByEmail)

	router.GET("/postsForum", forumHandler.ListPosts)
	router.GET("/latestPostsForum", forumHandler.LatestPosts)
	router.GET("/forum/:id", forumHandler.GetPost)

	router.GET("/reviews", reviewHandler.ListActive)

	router.POST("/api/subscribe", userHandler.Subscribe)

	// --- Protected routes ---
	protected := router.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/users", userHandler.List)

		protected.PATCH("/trainers/:id/confirm", trainerHandler.Confirm)
		protected.PATCH("/trainers/:id/reject", trainerHandler.Reject)
		protected.PATCH("/trainer/:id", trainerHandler.Demote)
		protected.PATCH("/approvedTrainer/:email", trainerHandler.SelectClass)

		protected.POST("/classes", scheduleHandler.CreateClass)
		protected.PATCH("/classes/:classId", scheduleHandler.AssignTrainer)
		protected.PATCH("/incrementClasses/:classId", scheduleHandler.IncrementBooking)

		protected.POST("/slots", scheduleHandler.CreateSlot)
		protected.PATCH("/api/slots/:trainerId", scheduleHandler.BookSlot)
		protected.DELETE("/slots/:id", scheduleHandler.DeleteSlot)

		protected.POST("/postsForum", forumHandler.CreatePost)
		protected.PATCH("/postsForum/:postId/vote", forumHandler.Vote)

		protected.POST("/api/create-payment-intent", paymentHandler.CreateIntent)
		protected.POST("/api/save-payment", paymentHandler.SavePayment)
		protected.GET("/payment-history/:email", paymentHandler.History)
		protected.GET("/all-payments", paymentHandler.ListAll)

		protected.POST("/reviews", reviewHandler.Submit)

		protected.POST("/uploads/image-url", uploadHandler.ImageUploadURL)
	}
}
