package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
	"github.com/fitnesshub/fitnesshub-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ScheduleHandler struct {
	scheduleService service.ScheduleService
	log             *zap.Logger
}

func NewScheduleHandler(scheduleService service.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		log:             log,
	}
}

// --- DTOs ---
type createClassRequest struct {
	ClassName      string `json:"className" binding:"required"`
	Details        string `json:"details"`
	AdditionalInfo string `json:"additionalInfo"`
	Image          string `json:"image"`
}

type assignTrainerRequest struct {
	ClassName string `json:"className" binding:"required"`
	Trainer   struct {
		TrainerID    string `json:"trainerId" binding:"required"`
		Name         string `json:"name"`
		Email        string `json:"email"`
		ProfileImage string `json:"profileImage"`
	} `json:"trainer" binding:"required"`
}

type createSlotRequest struct {
	SlotName        string `json:"slotName"`
	TrainerID       string `json:"trainerId" binding:"required"`
	TrainerEmail    string `json:"trainerEmail" binding:"required,email"`
	TrainerName     string `json:"trainerName"`
	ClassID         string `json:"classId"`
	ClassName       string `json:"className"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	Duration        string `json:"duration"`
	MaxParticipants int    `json:"maxParticipants"`
}

type bookSlotRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// pageParams reads ?page= and ?limit= with the storefront defaults.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultPageLimit)))
	return page, limit
}

// CreateClass handles POST /classes.
func (h *ScheduleHandler) CreateClass(c *gin.Context) {
	var req createClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	class, err := h.scheduleService.CreateClass(c.Request.Context(), &domain.Class{
		ClassName:      req.ClassName,
		Details:        req.Details,
		AdditionalInfo: req.AdditionalInfo,
		Image:          req.Image,
	})
	if err != nil {
		h.log.Error("failed to create class", zap.String("className", req.ClassName), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to create class.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "insertedId": class.ID.Hex(), "class": class})
}

// ListClasses handles GET /classes (paginated).
func (h *ScheduleHandler) ListClasses(c *gin.Context) {
	page, limit := pageParams(c)
	classes, pages, err := h.scheduleService.ListClasses(c.Request.Context(), page, limit)
	if err != nil {
		h.log.Error("failed to list classes", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve classes.")
		return
	}
	if classes == nil {
		classes = []domain.Class{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "classes": classes, "totalPages": pages})
}

// ListAllClasses handles GET /allClasses.
func (h *ScheduleHandler) ListAllClasses(c *gin.Context) {
	classes, err := h.scheduleService.ListAllClasses(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list all classes", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve classes.")
		return
	}
	if classes == nil {
		classes = []domain.Class{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "classes": classes})
}

// SearchClasses handles GET /classes/search?query=.
func (h *ScheduleHandler) SearchClasses(c *gin.Context) {
	page, limit := pageParams(c)
	classes, pages, err := h.scheduleService.SearchClasses(c.Request.Context(), c.Query("query"), page, limit)
	if err != nil {
		h.log.Error("failed to search classes", zap.String("query", c.Query("query")), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to search classes.")
		return
	}
	if classes == nil {
		classes = []domain.Class{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "classes": classes, "totalPages": pages})
}

// FeaturedClasses handles GET /featured-classes.
func (h *ScheduleHandler) FeaturedClasses(c *gin.Context) {
	classes, err := h.scheduleService.FeaturedClasses(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list featured classes", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve featured classes.")
		return
	}
	if classes == nil {
		classes = []domain.Class{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "classes": classes})
}

// AssignTrainer handles PATCH /classes/:classId.
func (h *ScheduleHandler) AssignTrainer(c *gin.Context) {
	var req assignTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	assignment := domain.TrainerAssignment{
		TrainerID:    req.Trainer.TrainerID,
		Name:         req.Trainer.Name,
		Email:        req.Trainer.Email,
		ProfileImage: req.Trainer.ProfileImage,
	}
	err := h.scheduleService.AssignTrainer(c.Request.Context(), c.Param("classId"), &domain.Class{ClassName: req.ClassName}, assignment)
	if err != nil {
		h.respondScheduleError(c, err, "Failed to assign trainer.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Trainer assigned"})
}

// IncrementBooking handles PATCH /incrementClasses/:classId.
func (h *ScheduleHandler) IncrementBooking(c *gin.Context) {
	if err := h.scheduleService.IncrementBookingCount(c.Request.Context(), c.Param("classId")); err != nil {
		h.respondScheduleError(c, err, "Failed to increment booking count.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking count incremented"})
}

// CreateSlot handles POST /slots.
func (h *ScheduleHandler) CreateSlot(c *gin.Context) {
	var req createSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	slot, err := h.scheduleService.CreateSlot(c.Request.Context(), &domain.Slot{
		SlotName:        req.SlotName,
		TrainerID:       req.TrainerID,
		TrainerEmail:    req.TrainerEmail,
		TrainerName:     req.TrainerName,
		ClassID:         req.ClassID,
		ClassName:       req.ClassName,
		Date:            req.Date,
		StartTime:       req.StartTime,
		Duration:        req.Duration,
		MaxParticipants: req.MaxParticipants,
	})
	if err != nil {
		h.log.Error("failed to create slot", zap.String("trainerId", req.TrainerID), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to create slot.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "insertedId": slot.ID.Hex(), "slot": slot})
}

// ListSlots handles GET /slots.
func (h *ScheduleHandler) ListSlots(c *gin.Context) {
	slots, err := h.scheduleService.ListSlots(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list slots", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve slots.")
		return
	}
	if slots == nil {
		slots = []domain.Slot{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "slots": slots})
}

// SlotByTrainer handles GET /slots/byTrainer/:trainerId.
func (h *ScheduleHandler) SlotByTrainer(c *gin.Context) {
	slot, err := h.scheduleService.SlotByTrainer(c.Request.Context(), c.Param("trainerId"))
	if err != nil {
		h.respondScheduleError(c, err, "Failed to retrieve slot.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "slot": slot})
}

// SlotsByEmail handles GET /slots/byEmail/:email.
func (h *ScheduleHandler) SlotsByEmail(c *gin.Context) {
	slots, err := h.scheduleService.SlotsByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.log.Error("failed to list slots by email", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve slots.")
		return
	}
	if slots == nil {
		slots = []domain.Slot{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "slots": slots})
}

// BookSlot handles PATCH /api/slots/:trainerId: append a customer booking.
func (h *ScheduleHandler) BookSlot(c *gin.Context) {
	var req bookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	customer := domain.CustomerInfo{Name: req.Name, Email: req.Email}
	if err := h.scheduleService.BookSlot(c.Request.Context(), c.Param("trainerId"), customer); err != nil {
		h.respondScheduleError(c, err, "Failed to book slot.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Slot booked"})
}

// DeleteSlot handles DELETE /slots/:id.
func (h *ScheduleHandler) DeleteSlot(c *gin.Context) {
	if err := h.scheduleService.DeleteSlot(c.Request.Context(), c.Param("id")); err != nil {
		h.respondScheduleError(c, err, "Failed to delete slot.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Slot deleted"})
}

// respondScheduleError maps scheduler service errors to HTTP codes.
func (h *ScheduleHandler) respondScheduleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidObjectID), errors.Is(err, service.ErrClassPayloadInvalid):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrClassNotFound), errors.Is(err, service.ErrSlotNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		h.log.Error("schedule error", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
