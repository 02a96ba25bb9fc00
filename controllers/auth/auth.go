package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"coolie-booking/controllers"
	"coolie-booking/logger"
	userModel "coolie-booking/models/user"
	"coolie-booking/types"
	authTypes "coolie-booking/types/auth"
	"coolie-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// AuthController handles registration, login and profile reads.
type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Register creates a passenger or coolie account. Coolie accounts still
// need a profile registration and admin approval before matching.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return controllers.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return controllers.RespondError(c, err, "Validation failed")
	}

	var existing userModel.User
	err := ac.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Email is already registered",
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Database error while checking existing user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create account",
		})
	}

	u := userModel.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := ac.DB.Create(&u).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create account",
		})
	}

	logger.Success(fmt.Sprintf("User registered with ID: %d", u.ID))

	token, err := signToken(&u)
	if err != nil {
		logger.Error("Failed to sign token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Account created but failed to issue token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Account created successfully",
		Token:   token,
		Data:    u,
	})
}

// Login exchanges credentials for a JWT.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return controllers.BadRequest(c, "Invalid request body")
	}

	u, err := utils.GetUserByEmail(ac.DB, req.Email)
	if err != nil || !utils.CheckPassword(u.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	token, err := signToken(u)
	if err != nil {
		logger.Error("Failed to sign token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to issue token",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Token:   token,
		Data:    u,
	})
}

// Profile returns the authenticated user's account.
func (ac *AuthController) Profile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	u, err := utils.GetUserByID(ac.DB, userID)
	if err != nil {
		return controllers.RespondError(c, err, "Failed to load profile")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Profile retrieved successfully",
		Data:    u,
	})
}

func signToken(u *userModel.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET is not configured")
	}

	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    u.Role,
		"name":    u.Name,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
