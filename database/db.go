package database

import (
	"fmt"
	"os"

	"coolie-booking/logger"
	"coolie-booking/models/booking"
	"coolie-booking/models/coolie"
	"coolie-booking/models/log"
	"coolie-booking/models/notification"
	"coolie-booking/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, username, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models, dependencies first.
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&user.User{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&coolie.Coolie{},
		&booking.Booking{},
		&booking.BookingStatusEvent{},
		&notification.Notification{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Remaining models
	remainingModels := []interface{}{
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// User indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)").Error; err != nil {
		return fmt.Errorf("failed to create user email index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)").Error; err != nil {
		return fmt.Errorf("failed to create user role index: %w", err)
	}

	// Coolie indexes: the eligibility query filters by station,
	// approval and availability, and tests platform membership with
	// jsonb containment.
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_coolies_station ON coolies(LOWER(station))").Error; err != nil {
		return fmt.Errorf("failed to create coolie station index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_coolies_eligibility ON coolies(is_approved, is_available)").Error; err != nil {
		return fmt.Errorf("failed to create coolie eligibility index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_coolies_platforms ON coolies USING gin (platforms)").Error; err != nil {
		return fmt.Errorf("failed to create coolie platforms index: %w", err)
	}

	// Booking indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_reference ON bookings(reference)").Error; err != nil {
		return fmt.Errorf("failed to create booking reference index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)").Error; err != nil {
		return fmt.Errorf("failed to create booking status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_created_at ON bookings(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create booking created_at index: %w", err)
	}

	// Notification indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient_id, is_read)").Error; err != nil {
		return fmt.Errorf("failed to create notification recipient index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
