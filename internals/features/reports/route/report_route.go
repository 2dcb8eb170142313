// internals/features/reports/route/report_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportController "sigesit_backend/internals/features/reports/controller"
)

// ReportAdminRoutes: rekap STBM (prefix admin).
func ReportAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := reportController.NewReportController(db)

	reports := r.Group("/reports")
	reports.Get("/recap", ctl.Recap)
}
