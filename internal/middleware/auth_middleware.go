package middleware

import (
	"log"
	"strings"

	"surplussaver/internal/models"
	"surplussaver/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthRequired.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// AuthRequired is a Fiber middleware that checks for a valid bearer access
// token. Refresh tokens are rejected here.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1], services.TokenTypeAccess)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		// Store identity in Fiber context for subsequent handlers
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// RequireRoles rejects with 403 unless the authenticated caller's role is in
// the given set. Must run after AuthRequired.
func RequireRoles(roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(models.Role)
		if !ok || !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Operation not permitted for this role",
			})
		}
		return c.Next()
	}
}

// RequireOwner rejects with 403 unless the path parameter matches the
// authenticated caller's id. Independent of role; must run after
// AuthRequired.
func RequireOwner(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(LocalUserID).(string)
		if userID == "" || c.Params(param) != userID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You do not own this resource",
			})
		}
		return c.Next()
	}
}

// CallerID returns the authenticated caller's id from the context.
func CallerID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// CallerRole returns the authenticated caller's role from the context.
func CallerRole(c *fiber.Ctx) models.Role {
	role, _ := c.Locals(LocalRole).(models.Role)
	return role
}
