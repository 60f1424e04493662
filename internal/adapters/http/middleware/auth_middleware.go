package middleware

import (
	"errors"
	"strings"

	"tripway/internal/adapters/persistence/repositories"
	"tripway/internal/config"
	"tripway/internal/pkg/jwt"
	"tripway/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthMiddleware creates authentication middleware. The token is read
// cookie-first, then from the Authorization header. The user row is
// loaded so disabled accounts lose access before their token expires.
func AuthMiddleware(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := extractToken(c)

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		user, err := userRepo.GetByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.Unauthorized(c, "Invalid access token")
			}
			return response.InternalServerError(c, "Failed to resolve user")
		}
		if !user.IsActive {
			return response.Forbidden(c, "Account is disabled")
		}

		c.Locals("userID", user.ID)
		c.Locals("username", user.Username)
		c.Locals("role", user.Role)

		return c.Next()
	}
}

// extractToken reads the access token, cookie first then Bearer header
func extractToken(c *fiber.Ctx) string {
	if token := c.Cookies("accessToken"); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// UserID returns the authenticated user's ID from the request context
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// UserRole returns the authenticated user's role from the request context
func UserRole(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}
