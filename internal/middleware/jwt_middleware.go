package middleware

import (
	"log"
	"strings"

	"chirp/internal/models"
	"chirp/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
// On success the token is resolved back into the persisted user and stored in
// the request locals as a models.Principal for the handlers downstream. A
// token whose subject no longer exists is treated as unauthorized.
func AuthRequired(authService *services.AuthService, userService *services.UserService) fiber.Handler {
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

		tokenString := parts[1]

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		userID, _ := claims["user_id"].(string)
		user, err := userService.GetUserByID(userID)
		if err != nil {
			log.Printf("Token subject %s could not be resolved: %v", userID, err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		// Store the authenticated principal for subsequent handlers
		c.Locals("principal", models.Principal(user))

		// Continue to the next handler
		return c.Next()
	}
}

// ViewerID extracts the authenticated viewer's user id set by AuthRequired.
// The second return is false when the request carries no authenticated viewer.
func ViewerID(c *fiber.Ctx) (string, bool) {
	principal, ok := c.Locals("principal").(models.Principal)
	if !ok || !principal.IsAuthenticated() {
		return "", false
	}
	return principal.PrincipalID(), true
}
