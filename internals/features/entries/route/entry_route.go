// internals/features/entries/route/entry_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	entryController "sigesit_backend/internals/features/entries/controller"
	"sigesit_backend/internals/middlewares"
)

// EntryUserRoutes: dipakai kader (dan admin, dengan cakupan lebih luas).
func EntryUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := entryController.NewEntryController(db)

	r.Get("/entries", ctrl.List)
	r.Get("/entries/check-kk", ctrl.CheckKK)
	r.Get("/entries/:id", ctrl.Detail)

	// Agen sinkronisasi bisa mengirim beruntun saat antrean di-drain
	r.Post("/entries", middlewares.SyncRateLimiter(), ctrl.Create)
	r.Put("/entries/:id", ctrl.Update)
	r.Delete("/entries/:id", ctrl.Delete)
}
