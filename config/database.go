package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/kendall-kelly/order-tracking-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultDatabaseURL is used when DATABASE_URL is not set
const DefaultDatabaseURL = "file:order_tracking.db?_foreign_keys=on"

var DB *gorm.DB

// ConnectDatabase opens the database named by cfg.DatabaseURL.
// postgres:// and postgresql:// URLs use the PostgreSQL driver, anything else
// is treated as a SQLite DSN.
func ConnectDatabase(cfg *Config) error {
	databaseURL := cfg.GetDatabaseURL()
	if databaseURL == "" {
		databaseURL = DefaultDatabaseURL
		log.Println("DATABASE_URL not set, using default:", databaseURL)
	}

	db, err := gorm.Open(Dialector(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db
	log.Println("Database connection established successfully")
	return nil
}

// Dialector picks the gorm driver for a database URL
func Dialector(databaseURL string) gorm.Dialector {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return postgres.Open(databaseURL)
	}
	return sqlite.Open(withForeignKeys(databaseURL))
}

// Migrate creates or updates the users, orders and order_activity tables.
// Order matters: foreign keys point at tables created earlier.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderActivity{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SetDB replaces the package-level database handle
func SetDB(db *gorm.DB) {
	DB = db
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SQLite only enforces ON DELETE CASCADE when foreign keys are switched on per connection
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}
