// internals/middlewares/auth/role_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	"sigesit_backend/internals/constants"
)

// OnlyRoles validasi role dari Locals + custom error message
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		if customMessage == "" {
			customMessage = "Forbidden: you are not authorized to access this resource"
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": customMessage,
		})
	}
}

// IsAdmin: admin dan super_admin
func IsAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || !constants.IsAdminRole(role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Hanya admin yang dapat mengakses fitur ini",
			})
		}
		return c.Next()
	}
}

// IsSuperAdmin: khusus super_admin
func IsSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || !constants.IsSuperAdminRole(role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Hanya super admin yang dapat mengakses fitur ini",
			})
		}
		return c.Next()
	}
}
