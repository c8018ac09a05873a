package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/kendall-kelly/order-tracking-api/config"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestJWTSecret signs every token issued through TestConfig
const TestJWTSecret = "test-secret"

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development databases.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	t.Setenv("GO_ENV", "test")
	if os.Getenv("GO_ENV") != "test" {
		t.Fatal("Failed to verify GO_ENV=test")
	}
}

// NewTestDB opens a migrated in-memory SQLite database with foreign keys enforced.
// The pool is capped at one connection; a second one would see a different database.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "Failed to connect to test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db), "Failed to migrate test database")
	return db
}

// TestConfig returns a configuration suitable for handler and end-to-end tests
func TestConfig() *config.Config {
	return &config.Config{
		Port:                     "8080",
		GoEnv:                    "test",
		JWTSecret:                TestJWTSecret,
		JWTIssuer:                config.DefaultJWTIssuer,
		JWTAudience:              config.DefaultJWTAudience,
		AccessTokenExpireMinutes: config.DefaultAccessTokenExpireMinutes,
		CORSAllowedOrigins:       []string{"http://localhost:3000", "http://localhost:5173"},
		LogLevel:                 "error",
	}
}

// PrintEnvironmentInfo prints the current test environment configuration.
// Useful for debugging test environment issues.
func PrintEnvironmentInfo() {
	fmt.Printf("Test Environment Info:\n")
	fmt.Printf("  GO_ENV: %s\n", os.Getenv("GO_ENV"))
	fmt.Printf("  DATABASE_URL: %s\n", maskDatabaseURL(os.Getenv("DATABASE_URL")))
	fmt.Printf("  PORT: %s\n", os.Getenv("PORT"))
}

// maskDatabaseURL hides everything after the scheme and flags URLs that do not look like a test database
func maskDatabaseURL(url string) string {
	if url == "" {
		return "(not set)"
	}
	masked := url
	if len(url) > 20 {
		masked = url[:20] + "..."
	}
	if strings.Contains(url, "test") || strings.Contains(url, ":memory:") {
		return masked + " [test database]"
	}
	return masked + " [WARNING: may not be test DB]"
}
