package api

import (
	"errors"
	"net/http"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
	"github.com/fitnesshub/fitnesshub-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	log           *zap.Logger
}

func NewReviewHandler(reviewService service.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		log:           log,
	}
}

// --- DTOs ---
type submitReviewRequest struct {
	TrainerID   string `json:"trainerId" binding:"required"`
	TrainerName string `json:"trainerName"`
	UserID      string `json:"userId"`
	UserEmail   string `json:"userEmail" binding:"required,email"`
	UserName    string `json:"userName"`
	Rating      int    `json:"rating" binding:"required"`
	Review      string `json:"review" binding:"required"`
}

// Submit handles POST /reviews.
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	review, average, err := h.reviewService.SubmitReview(c.Request.Context(), &domain.Review{
		TrainerID:   req.TrainerID,
		TrainerName: req.TrainerName,
		UserID:      req.UserID,
		UserEmail:   req.UserEmail,
		UserName:    req.UserName,
		Rating:      req.Rating,
		Review:      req.Review,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRatingOutOfRange), errors.Is(err, service.ErrReviewIncomplete):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAlreadyReviewed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("failed to submit review", zap.String("trainerId", req.TrainerID), zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, "Failed to submit review.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"insertedId":    review.ID.Hex(),
		"averageRating": average,
	})
}

// ListActive handles GET /reviews. An empty review list is a 404, which the
// frontend uses to show its empty state.
func (h *ReviewHandler) ListActive(c *gin.Context) {
	reviews, err := h.reviewService.ListActive(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list reviews", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve reviews.")
		return
	}
	if len(reviews) == 0 {
		abortWithError(c, http.StatusNotFound, "No reviews found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": reviews})
}
