package api

import (
	"net/http"
	"time"

	"github.com/fitnesshub/fitnesshub-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Cookie lifetime matches the token expiry the frontend expects.
const authCookieMaxAge = 24 * time.Hour

type AuthHandler struct {
	authService service.AuthService
	log         *zap.Logger
}

func NewAuthHandler(authService service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// --- DTOs ---
type issueTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// IssueToken handles POST /jwt: it signs a session token for the email and
// sets it as an httpOnly cookie.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req issueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), req.Email)
	if err != nil {
		h.log.Error("failed to issue token", zap.String("email", req.Email), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to issue token.")
		return
	}

	// Cross-site frontend: SameSite=None requires the Secure flag.
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(AuthCookieName, token, int(authCookieMaxAge.Seconds()), "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout handles GET /logout: it expires the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(AuthCookieName, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
