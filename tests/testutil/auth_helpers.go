package testutil

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/order-tracking-api/config"
	"github.com/kendall-kelly/order-tracking-api/middleware"
	"github.com/kendall-kelly/order-tracking-api/models"
	"github.com/kendall-kelly/order-tracking-api/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the password CreateUser registers every user with
const TestPassword = "secret123"

// NewTestAuthService builds an auth service with the cheapest bcrypt cost
func NewTestAuthService(t testing.TB, db *gorm.DB, cfg *config.Config) *services.AuthService {
	t.Helper()

	svc, err := services.NewAuthService(db, cfg, services.WithPasswordCost(bcrypt.MinCost))
	require.NoError(t, err)
	return svc
}

// CreateUser registers a user with TestPassword
func CreateUser(t testing.TB, svc *services.AuthService, username string, role models.Role) *models.User {
	t.Helper()

	user, err := svc.Register(context.Background(), services.RegisterInput{
		Username: username,
		Password: TestPassword,
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

// BearerHeader formats an Authorization header value for a user's token
func BearerHeader(t testing.TB, svc *services.AuthService, user *models.User) string {
	t.Helper()

	token, err := svc.IssueToken(user)
	require.NoError(t, err)
	return "Bearer " + token
}

// MockAuthMiddleware stores user in the context exactly as AuthRequired does
func MockAuthMiddleware(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetCurrentUser(c, user)
		c.Next()
	}
}
