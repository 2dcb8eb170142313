// internals/features/users/controller/auth_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userService "sigesit_backend/internals/features/users/service"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	return userService.Login(ac.DB, c)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return userService.Logout(ac.DB, c)
}

// POST /api/auth/refresh-token
func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	return userService.RefreshToken(ac.DB, c)
}

// GET /api/u/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	return userService.Me(ac.DB, c)
}
