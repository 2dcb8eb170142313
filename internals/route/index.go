// internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	entryRoute "sigesit_backend/internals/features/entries/route"
	locationRoute "sigesit_backend/internals/features/location/route"
	profileRoute "sigesit_backend/internals/features/profile/route"
	reportRoute "sigesit_backend/internals/features/reports/route"
	userRoute "sigesit_backend/internals/features/users/route"
	authMiddleware "sigesit_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	api := app.Group("/api")

	// ===================== AUTH (publik) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	userRoute.AuthRoutes(api, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := api.Group("/u", authMiddleware.AuthMiddleware(db))

	userRoute.UserRoutes(private, db)
	locationRoute.LocationUserRoutes(private, db)
	entryRoute.EntryUserRoutes(private, db)
	profileRoute.ProfileUserRoutes(private, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := api.Group("/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.IsAdmin(),
	)

	locationRoute.LocationAdminRoutes(admin, db)
	userRoute.UserAdminRoutes(admin, db)
	profileRoute.ProfileAdminRoutes(admin, db)

	// ===================== SUPER ADMIN =====================
	log.Println("[INFO] Setting up SUPER ADMIN group...")
	super := api.Group("/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.IsSuperAdmin(),
	)

	reportRoute.ReportAdminRoutes(super, db)
}
