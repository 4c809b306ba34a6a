package middleware

import (
	"github.com/gofiber/fiber/v2"

	"ops-dashboard/internal/domain"
)

func RequireAnyRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		role := domain.ParseRole(string(user.Role))
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}

		return Forbidden("Insufficient permissions for this operation")
	}
}

// RequireElevated admits ADMIN and MANAGER.
func RequireElevated() fiber.Handler {
	return RequireAnyRole(domain.RoleAdmin, domain.RoleManager)
}
