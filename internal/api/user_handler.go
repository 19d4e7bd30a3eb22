package api

import (
	"errors"
	"net/http"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
	"github.com/fitnesshub/fitnesshub-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService service.UserService
	log         *zap.Logger
}

func NewUserHandler(userService service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

// --- DTOs ---
type registerUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	PhotoURL string `json:"photoURL"`
	Password string `json:"password"`
}

type subscribeRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// Register handles POST /users.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			// Existing accounts are not an error for the signup flow; social
			// logins re-post the profile on every visit.
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "user already exists", "insertedId": nil})
			return
		}
		h.log.Error("failed to register user", zap.String("email", req.Email), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to register user.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "insertedId": user.ID.Hex(), "user": user})
}

// List handles GET /users (protected).
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list users", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve users.")
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// Exists handles GET /users/exist/:email.
func (h *UserHandler) Exists(c *gin.Context) {
	exists, err := h.userService.Exists(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.log.Error("failed to check user existence", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to check user.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "exists": exists})
}

// Role handles GET /users/role/:email.
func (h *UserHandler) Role(c *gin.Context) {
	role, err := h.userService.RoleByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("failed to get user role", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to get user role.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "role": role})
}

// Subscribe handles POST /api/subscribe.
func (h *UserHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sub, err := h.userService.Subscribe(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrAlreadySubscribed) {
			abortWithError(c, http.StatusBadRequest, "Already subscribed.")
			return
		}
		h.log.Error("failed to subscribe", zap.String("email", req.Email), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to subscribe.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "insertedId": sub.ID.Hex()})
}
