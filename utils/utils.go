package utils

import (
	"errors"
	"strconv"
	"strings"

	"coolie-booking/domain"
	bookingModel "coolie-booking/models/booking"
	userModel "coolie-booking/models/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ParseIDParam reads a positive integer route parameter.
func ParseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ValidationError{Field: name, Msg: "must be a positive integer"}
	}
	return uint(id), nil
}

// ParsePagination reads page/limit query params with the usual
// defaults.
func ParsePagination(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// ParseStatusFilter reads a comma-separated ?status= filter into valid
// booking statuses; unknown values are rejected.
func ParseStatusFilter(c *fiber.Ctx) ([]bookingModel.BookingStatus, error) {
	raw := strings.TrimSpace(c.Query("status"))
	if raw == "" {
		return nil, nil
	}
	var statuses []bookingModel.BookingStatus
	for _, part := range strings.Split(raw, ",") {
		s := bookingModel.BookingStatus(strings.TrimSpace(part))
		if !s.IsValid() {
			return nil, domain.ValidationError{Field: "status", Msg: "unknown booking status " + s.String()}
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

// GetUserByID loads a user account by primary key.
func GetUserByID(db *gorm.DB, id uint) (*userModel.User, error) {
	var u userModel.User
	if err := db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "user"}
		}
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail loads a user account by email.
func GetUserByEmail(db *gorm.DB, email string) (*userModel.User, error) {
	var u userModel.User
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "user"}
		}
		return nil, err
	}
	return &u, nil
}
