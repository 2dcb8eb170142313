// internals/features/profile/route/pkm_profile_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	profileController "sigesit_backend/internals/features/profile/controller"
)

// ProfileUserRoutes: kop profil PKM untuk semua akun login.
func ProfileUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := profileController.NewPKMProfileController(db)

	r.Get("/pkm-profile", ctl.Get)
}

// ProfileAdminRoutes: pengaturan profil PKM (admin).
func ProfileAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := profileController.NewPKMProfileController(db)

	r.Put("/pkm-profile", ctl.Upsert)
}
