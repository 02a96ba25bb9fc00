package seeders

import (
	"errors"
	"fmt"
	"os"

	"coolie-booking/constants"
	"coolie-booking/logger"
	userModel "coolie-booking/models/user"
	"coolie-booking/utils"

	"gorm.io/gorm"
)

// SeedAdmin creates the admin account from ADMIN_EMAIL / ADMIN_PASSWORD
// when it does not exist yet. Without the env vars the seeder is a
// no-op.
func SeedAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Warning("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	var existing userModel.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}

	admin := userModel.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         constants.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logger.Success(fmt.Sprintf("Admin account seeded with ID: %d", admin.ID))
	return nil
}
