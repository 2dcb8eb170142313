// internals/features/users/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "sigesit_backend/internals/features/users/controller"
	"sigesit_backend/internals/middlewares"
)

// AuthRoutes: endpoint publik autentikasi.
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	ctl := userController.NewAuthController(db)

	auth := r.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	auth.Post("/logout", ctl.Logout)
	auth.Post("/refresh-token", ctl.RefreshToken)
}

// UserRoutes: endpoint akun login (prefix sudah dilindungi auth middleware).
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := userController.NewAuthController(db)

	r.Get("/me", ctl.Me)
}

// UserAdminRoutes: kelola akun kader (prefix admin).
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := userController.NewUserAdminController(db)

	users := r.Group("/users")
	users.Get("/", ctl.List)
	users.Post("/", ctl.Create)
	users.Patch("/:id/status", ctl.UpdateStatus)
	users.Post("/manage", ctl.Manage)
}
