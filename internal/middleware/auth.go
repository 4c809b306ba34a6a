package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"ops-dashboard/internal/domain"
	"ops-dashboard/internal/service/auth"
)

const (
	UserContextKey   = "user"
	ViewerContextKey = "viewer"
)

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Missing authorization header",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid authorization header format",
			})
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired token",
			})
		}

		// The stored role wins over whatever the token claims.
		user, err := authService.GetUserByID(c.UserContext(), claims.UserID)
		if err != nil || user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "User not found",
			})
		}

		c.Locals(UserContextKey, user)
		c.Locals(ViewerContextKey, user.Viewer())

		return c.Next()
	}
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// GetViewer returns the identity every access decision is made for. Without
// an authenticated user it is the empty viewer, which has no elevated access
// and matches no recipient list.
func GetViewer(c *fiber.Ctx) domain.Viewer {
	viewer, ok := c.Locals(ViewerContextKey).(domain.Viewer)
	if !ok {
		return domain.Viewer{}
	}
	return viewer
}
