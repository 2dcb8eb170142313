// internals/features/location/route/location_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	locController "sigesit_backend/internals/features/location/controller"
)

// LocationUserRoutes: read-only, untuk dropdown form entri kader.
func LocationUserRoutes(r fiber.Router, db *gorm.DB) {
	kel := locController.NewKelurahanController(db)
	area := locController.NewAreaController(db)

	r.Get("/kelurahan", kel.List)
	r.Get("/rw", area.ListRW)
	r.Get("/rt", area.ListRT)
}

// LocationAdminRoutes: CRUD master wilayah, admin saja.
func LocationAdminRoutes(r fiber.Router, db *gorm.DB) {
	kel := locController.NewKelurahanController(db)
	area := locController.NewAreaController(db)

	r.Post("/kelurahan", kel.Create)
	r.Put("/kelurahan/:id", kel.Update)
	r.Delete("/kelurahan/:id", kel.Delete)

	r.Get("/rw/all", area.ListAllRW)
	r.Post("/rw", area.CreateRW)
	r.Put("/rw/:id", area.UpdateRW)
	r.Delete("/rw/:id", area.DeleteRW)

	r.Get("/rt/all", area.ListAllRT)
	r.Post("/rt", area.CreateRT)
	r.Put("/rt/:id", area.UpdateRT)
	r.Delete("/rt/:id", area.DeleteRT)
}
