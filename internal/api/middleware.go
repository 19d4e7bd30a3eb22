package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Name of the session cookie carrying the JWT.
const AuthCookieName = "token"

// Constants for context keys
const (
	ContextUserEmailKey = "userEmail"
	ContextUserRoleKey  = "userRole"
)

// jwtClaims mirrors the payload signed by authService.IssueToken.
type jwtClaims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware gates protected routes on the session cookie. Any missing,
// malformed or expired token gets the same 401 body.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(AuthCookieName)
		if err != nil || tokenString == "" {
			abortUnauthorized(c)
			return
		}

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid || claims.Email == "" {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextUserEmailKey, claims.Email)
		c.Set(ContextUserRoleKey, claims.Role)
		c.Next()
	}
}

// abortUnauthorized rejects the request with the fixed 401 body clients
// match on.
func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
}

// abortWithError returns a JSON error response and aborts the request.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "error": message})
}

// getUserEmailFromContext returns the authenticated email set by AuthMiddleware.
func getUserEmailFromContext(c *gin.Context) (string, error) {
	raw, exists := c.Get(ContextUserEmailKey)
	if !exists {
		return "", errors.New("user email not found in context")
	}
	email, ok := raw.(string)
	if !ok {
		return "", errors.New("invalid user email type in context")
	}
	return email, nil
}
