package services

import (
	"context"
	"testing"
	"time"

	"github.com/kendall-kelly/order-tracking-api/config"
	"github.com/kendall-kelly/order-tracking-api/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "Failed to connect to test database")

	// A second connection would see a different in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db), "Failed to migrate test database")
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		GoEnv:                    "test",
		JWTSecret:                "test-secret",
		JWTIssuer:                config.DefaultJWTIssuer,
		JWTAudience:              config.DefaultJWTAudience,
		AccessTokenExpireMinutes: config.DefaultAccessTokenExpireMinutes,
	}
}

func newTestAuthService(t *testing.T, db *gorm.DB, opts ...AuthOption) *AuthService {
	t.Helper()
	opts = append([]AuthOption{WithPasswordCost(bcrypt.MinCost)}, opts...)
	svc, err := NewAuthService(db, testConfig(), opts...)
	require.NoError(t, err)
	return svc
}

func mustRegister(t *testing.T, svc *AuthService, username string, role models.Role) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Username: username,
		Password: "secret123",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

// pastClock returns a clock that runs d behind real time
func pastClock(d time.Duration) func() time.Time {
	return func() time.Time {
		return time.Now().Add(-d)
	}
}
