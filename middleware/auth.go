package middleware

import (
	"fmt"
	"os"
	"strings"

	"coolie-booking/constants"
	"coolie-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// VerifyJWT validates an HS256 token against JWT_SECRET and returns its
// claims.
func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}

// Authenticate checks for a valid token and attaches the caller's
// identity to the request context. Everything behind it can trust
// Locals("userID") and Locals("role").
func Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Status:  fiber.StatusUnauthorized,
					Message: "Invalid authorization header format",
				})
			}
			token = tokenParts[1]
		} else {
			// Fall back to the access cookie.
			token = c.Cookies("access")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Status:  fiber.StatusUnauthorized,
					Message: "Authorization token missing",
				})
			}
		}

		claims, err := VerifyJWT(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Invalid or expired token",
			})
		}

		userID, ok := claims["user_id"].(float64)
		if !ok || userID <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Session expired. Login again.",
			})
		}
		role, ok := claims["role"].(string)
		if !ok || !constants.ValidRole(role) {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Session expired. Login again.",
			})
		}

		c.Locals("userID", uint(userID))
		c.Locals("role", role)

		return c.Next()
	}
}

// RequireRoles allows only the listed roles past. Run after
// Authenticate.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Insufficient permissions",
		})
	}
}

// CurrentUser returns the authenticated caller's id and role.
func CurrentUser(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	return userID, role
}
