package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/voltline/internal/utils"
)

const adminContextKey = "currentAdmin"

// AdminAuth validates the bearer token and stores its claims in context.
func AdminAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		claims, err := utils.ParseToken(secret, strings.TrimSpace(parts[1]))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(adminContextKey, claims)
		return c.Next()
	}
}

// CurrentAdmin returns the claims of the signed-in admin.
func CurrentAdmin(c *fiber.Ctx) (*utils.AdminClaims, bool) {
	claims, ok := c.Locals(adminContextKey).(*utils.AdminClaims)
	return claims, ok && claims != nil
}
