package api

import (
	"errors"
	"net/http"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
	"github.com/fitnesshub/fitnesshub-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TrainerHandler struct {
	trainerService service.TrainerService
	log            *zap.Logger
}

func NewTrainerHandler(trainerService service.TrainerService, log *zap.Logger) *TrainerHandler {
	return &TrainerHandler{
		trainerService: trainerService,
		log:            log,
	}
}

// --- DTOs ---
type applyTrainerRequest struct {
	Name          string   `json:"name" binding:"required"`
	Email         string   `json:"email" binding:"required,email"`
	Age           int      `json:"age"`
	ProfileImage  string   `json:"profileImage"`
	Skills        []string `json:"skills"`
	AvailableDays []string `json:"availableDays"`
	AvailableTime string   `json:"availableTime"`
	Experience    string   `json:"experience"`
	Biography     string   `json:"biography"`
}

type rejectTrainerRequest struct {
	Feedback string `json:"feedback"`
}

type selectClassRequest struct {
	SelectedClass string `json:"selectedClass" binding:"required"`
}

// Apply handles POST /trainers: a user submits a trainer application.
func (h *TrainerHandler) Apply(c *gin.Context) {
	var req applyTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	app, err := h.trainerService.SubmitApplication(c.Request.Context(), &domain.TrainerApplication{
		Name:          req.Name,
		Email:         req.Email,
		Age:           req.Age,
		ProfileImage:  req.ProfileImage,
		Skills:        req.Skills,
		AvailableDays: req.AvailableDays,
		AvailableTime: req.AvailableTime,
		Experience:    req.Experience,
		Biography:     req.Biography,
	})
	if err != nil {
		h.log.Error("failed to submit trainer application", zap.String("email", req.Email), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to submit application.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "insertedId": app.ID.Hex(), "application": app})
}

// ListPending handles GET /trainers: applications awaiting a decision.
func (h *TrainerHandler) ListPending(c *gin.Context) {
	apps, err := h.trainerService.ListPending(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list pending applications", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve applications.")
		return
	}
	if apps == nil {
		apps = []domain.TrainerApplication{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "trainers": apps})
}

// GetByID handles GET /trainers/:id.
func (h *TrainerHandler) GetByID(c *gin.Context) {
	app, err := h.trainerService.GetApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLifecycleError(c, err, "Failed to retrieve application.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "trainer": app})
}

// GetByEmail handles GET /trainersByEmail/:email.
func (h *TrainerHandler) GetByEmail(c *gin.Context) {
	app, err := h.trainerService.GetApplicationByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.respondLifecycleError(c, err, "Failed to retrieve application.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "trainer": app})
}

// Confirm handles PATCH /trainers/:id/confirm: promote a pending
// application to an approved trainer.
func (h *TrainerHandler) Confirm(c *gin.Context) {
	approved, err := h.trainerService.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLifecycleError(c, err, "Failed to approve trainer.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Trainer approved", "approvedTrainer": approved})
}

// Reject handles PATCH /trainers/:id/reject.
func (h *TrainerHandler) Reject(c *gin.Context) {
	var req rejectTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.trainerService.Reject(c.Request.Context(), c.Param("id"), req.Feedback); err != nil {
		h.respondLifecycleError(c, err, "Failed to reject trainer.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Trainer rejected"})
}

// Demote handles PATCH /trainer/:id: remove an approved trainer and return
// the account to a plain user.
func (h *TrainerHandler) Demote(c *gin.Context) {
	if err := h.trainerService.Demote(c.Request.Context(), c.Param("id")); err != nil {
		h.respondLifecycleError(c, err, "Failed to demote trainer.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Trainer demoted"})
}

// ListApproved handles GET /approvedTrainers.
func (h *TrainerHandler) ListApproved(c *gin.Context) {
	trainers, err := h.trainerService.ListApproved(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list approved trainers", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve trainers.")
		return
	}
	if trainers == nil {
		trainers = []domain.ApprovedTrainer{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "trainers": trainers})
}

// GetApprovedByID handles GET /approvedTrainers/:id.
func (h *TrainerHandler) GetApprovedByID(c *gin.Context) {
	trainer, err := h.trainerService.GetApproved(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLifecycleError(c, err, "Failed to retrieve trainer.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "trainer": trainer})
}

// GetApprovedByEmail handles GET /approvedTrainer/:email.
func (h *TrainerHandler) GetApprovedByEmail(c *gin.Context) {
	trainer, err := h.trainerService.GetApprovedByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.respondLifecycleError(c, err, "Failed to retrieve trainer.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "trainer": trainer})
}

// SelectClass handles PATCH /approvedTrainer/:email: record the class the
// trainer wants to teach.
func (h *TrainerHandler) SelectClass(c *gin.Context) {
	var req selectClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.trainerService.SelectClass(c.Request.Context(), c.Param("email"), req.SelectedClass); err != nil {
		h.respondLifecycleError(c, err, "Failed to select class.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Class selected"})
}

// respondLifecycleError maps trainer lifecycle service errors to HTTP codes.
func (h *TrainerHandler) respondLifecycleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidObjectID):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrApplicationMissing), errors.Is(err, service.ErrTrainerNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		h.log.Error("trainer lifecycle error", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
