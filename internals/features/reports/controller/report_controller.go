// internals/features/reports/controller/report_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportService "sigesit_backend/internals/features/reports/service"
	helper "sigesit_backend/internals/helpers"
)

type ReportController struct {
	Service *reportService.ReportService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{Service: reportService.NewReportService(db)}
}

func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" harus format YYYY-MM-DD")
	}
	return &t, nil
}

// GET /api/a/reports/recap?date_from=&date_to=
func (ctl *ReportController) Recap(c *fiber.Ctx) error {
	from, err := parseDateQuery(c, "date_from")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	to, err := parseDateQuery(c, "date_to")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if from != nil && to != nil && to.Before(*from) {
		return helper.JsonError(c, fiber.StatusBadRequest, "date_to tidak boleh sebelum date_from")
	}

	report, rerr := ctl.Service.BuildRecap(c.Context(), from, to)
	if rerr != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun rekap")
	}

	return helper.JsonOK(c, "OK", report)
}
