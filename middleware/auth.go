package middleware

import (
	"context"
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/order-tracking-api/models"
	"github.com/kendall-kelly/order-tracking-api/services"
)

const currentUserKey = "current_user"

// TokenResolver is the part of the auth service the middleware depends on
type TokenResolver interface {
	ResolveCurrentUser(ctx context.Context, token string) (*models.User, error)
	RequireAdmin(ctx context.Context, token string) (*models.User, error)
}

// AuthRequired resolves the bearer token to a user and stores it in the Gin context
func AuthRequired(auth TokenResolver) gin.HandlerFunc {
	return authenticate(auth.ResolveCurrentUser)
}

// AdminRequired is AuthRequired plus a role check; non-admins get 403
func AdminRequired(auth TokenResolver) gin.HandlerFunc {
	return authenticate(auth.RequireAdmin)
}

func authenticate(resolve func(ctx context.Context, token string) (*models.User, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := jwtmiddleware.AuthHeaderTokenExtractor(c.Request)
		if err != nil {
			RespondError(c, services.ErrInvalidToken)
			return
		}

		user, err := resolve(c.Request.Context(), token)
		if err != nil {
			RespondError(c, err)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// GetCurrentUser extracts the authenticated user from the Gin context
func GetCurrentUser(c *gin.Context) (*models.User, error) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_USER", Message: "User not found in context"}
	}

	user, ok := value.(*models.User)
	if !ok || user == nil {
		return nil, &AuthError{Code: "INVALID_USER", Message: "User in context has an unexpected type"}
	}

	return user, nil
}

// SetCurrentUser stores user in the Gin context the same way AuthRequired does
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(currentUserKey, user)
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// MustCurrentUser is GetCurrentUser for handlers mounted behind AuthRequired.
// It writes a 401 and returns false when no user is present.
func MustCurrentUser(c *gin.Context) (*models.User, bool) {
	user, err := GetCurrentUser(c)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}
	return user, true
}
