package api

import (
	"errors"
	"net/http"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
	"github.com/fitnesshub/fitnesshub-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	log            *zap.Logger
}

func NewPaymentHandler(paymentService service.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		log:            log,
	}
}

// --- DTOs ---
type createIntentRequest struct {
	Price float64 `json:"price"`
}

type savePaymentRequest struct {
	TransactionID string  `json:"transactionId" binding:"required"`
	UserName      string  `json:"userName"`
	UserEmail     string  `json:"userEmail" binding:"required,email"`
	Price         float64 `json:"price"`
	Status        string  `json:"status"`

	TrainerID      string `json:"trainerId"`
	TrainerName    string `json:"trainerName"`
	TrainerEmail   string `json:"trainerEmail"`
	TrainerProfile string `json:"trainerProfile"`

	ClassID             string `json:"classId"`
	ClassName           string `json:"className"`
	ClassImage          string `json:"classImage"`
	ClassDetails        string `json:"classDetails"`
	ClassAdditionalInfo string `json:"classAdditionalInfo"`

	SlotName            string   `json:"slotName"`
	SlotStatus          string   `json:"slotStatus"`
	PackageName         string   `json:"packageName"`
	MembershipType      string   `json:"membershipType"`
	MembershipFeatures  []string `json:"membershipFeatures"`
	SpecialInstructions string   `json:"specialInstructions"`
	Date                string   `json:"date"`
	StartTime           string   `json:"startTime"`
	MaxParticipants     int      `json:"maxParticipants"`
}

// CreateIntent handles POST /api/create-payment-intent.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid price amount"})
		return
	}

	clientSecret, err := h.paymentService.CreateIntent(c.Request.Context(), req.Price)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPrice) {
			// Fixed body the frontend matches on.
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid price amount"})
			return
		}
		h.log.Error("failed to create payment intent", zap.Float64("price", req.Price), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to create payment intent.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

// SavePayment handles POST /api/save-payment.
func (h *PaymentHandler) SavePayment(c *gin.Context) {
	var req savePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), &domain.Payment{
		TransactionID:       req.TransactionID,
		UserName:            req.UserName,
		UserEmail:           req.UserEmail,
		Price:               req.Price,
		Status:              req.Status,
		TrainerID:           req.TrainerID,
		TrainerName:         req.TrainerName,
		TrainerEmail:        req.TrainerEmail,
		TrainerProfile:      req.TrainerProfile,
		ClassID:             req.ClassID,
		ClassName:           req.ClassName,
		ClassImage:          req.ClassImage,
		ClassDetails:        req.ClassDetails,
		ClassAdditionalInfo: req.ClassAdditionalInfo,
		SlotName:            req.SlotName,
		SlotStatus:          req.SlotStatus,
		PackageName:         req.PackageName,
		MembershipType:      req.MembershipType,
		MembershipFeatures:  req.MembershipFeatures,
		SpecialInstructions: req.SpecialInstructions,
		Date:                req.Date,
		StartTime:           req.StartTime,
		MaxParticipants:     req.MaxParticipants,
	})
	if err != nil {
		if errors.Is(err, service.ErrPaymentIncomplete) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("failed to save payment", zap.String("transactionId", req.TransactionID), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to save payment.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "insertedId": payment.ID.Hex()})
}

// History handles GET /payment-history/:email.
func (h *PaymentHandler) History(c *gin.Context) {
	payments, err := h.paymentService.HistoryByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.log.Error("failed to get payment history", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve payment history.")
		return
	}
	if len(payments) == 0 {
		abortWithError(c, http.StatusNotFound, "No payment history found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payments": payments})
}

// ListAll handles GET /all-payments.
func (h *PaymentHandler) ListAll(c *gin.Context) {
	payments, err := h.paymentService.ListAll(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list payments", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve payments.")
		return
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payments": payments})
}
