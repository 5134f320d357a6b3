package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"imovia_backend/internal/authz"
	"imovia_backend/pkg/utils/jwt"
)

func tokenFromHeader(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if auth == "" {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

// AuthMiddleware requires a valid bearer token and stores the claims in
// c.Locals("user").
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromHeader(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization token",
			})
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// OptionalAuth resolves claims when a token is present but lets anonymous
// requests through. Favorites work in both modes.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := tokenFromHeader(c); token != "" {
			if claims, err := jwt.ValidateToken(token); err == nil {
				c.Locals("user", claims)
			}
		}
		return c.Next()
	}
}

// RequireAdmin gates the admin area behind the given authorization
// predicate. Runs after AuthMiddleware.
func RequireAdmin(pred authz.Predicate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(*jwt.Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization token",
			})
		}

		if !pred(claims) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		return c.Next()
	}
}
