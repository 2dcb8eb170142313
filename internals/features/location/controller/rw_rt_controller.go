// internals/features/location/controller/rw_rt_controller.go
package controller

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	locDTO "sigesit_backend/internals/features/location/dto"
	locModel "sigesit_backend/internals/features/location/model"
	helper "sigesit_backend/internals/helpers"
)

type AreaController struct {
	DB *gorm.DB
}

func NewAreaController(db *gorm.DB) *AreaController {
	return &AreaController{DB: db}
}

/* ===================== RW ===================== */

// GET /api/u/rw?kelurahan_id=...
func (h *AreaController) ListRW(c *fiber.Ctx) error {
	kelID, err := uuid.Parse(c.Query("kelurahan_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "kelurahan_id tidak valid")
	}

	var rows []locModel.RWModel
	if err := h.DB.Where("kelurahan_id = ?", kelID).Order("name").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data RW")
	}
	// urut numerik (1, 2, 10 dan bukan 1, 10, 2)
	sort.SliceStable(rows, func(i, j int) bool {
		return helper.NaturalLess(rows[i].Name, rows[j].Name)
	})
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/a/rw/all — semua RW + nama kelurahan (layar master admin)
func (h *AreaController) ListAllRW(c *fiber.Ctx) error {
	var rows []locModel.RWModel
	if err := h.DB.Preload("Kelurahan").Order("name").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data RW")
	}
	return helper.JsonOK(c, "ok", rows)
}

// POST /api/a/rw
func (h *AreaController) CreateRW(c *fiber.Ctx) error {
	var req locDTO.CreateRWRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	m := locModel.RWModel{Name: req.Name, KelurahanID: req.KelurahanID}
	if err := h.DB.Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat RW")
	}
	return helper.JsonCreated(c, "RW berhasil dibuat", m)
}

// PUT /api/a/rw/:id
func (h *AreaController) UpdateRW(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req locDTO.UpdateRWRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	res := h.DB.Model(&locModel.RWModel{}).Where("id = ?", id).
		Updates(map[string]any{"name": req.Name, "kelurahan_id": req.KelurahanID})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui RW")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "RW tidak ditemukan")
	}
	return helper.JsonUpdated(c, "RW diperbarui", fiber.Map{"id": id, "name": req.Name})
}

// DELETE /api/a/rw/:id
func (h *AreaController) DeleteRW(c *fiber.Ctx) error {
	return h.deleteArea(c, "rw", &locModel.RWModel{},
		"RW masih digunakan oleh data RT, entri survei, atau akun kader. Hapus data terkait terlebih dahulu.")
}

/* ===================== RT ===================== */

// GET /api/u/rt?rw_id=...
func (h *AreaController) ListRT(c *fiber.Ctx) error {
	rwID, err := uuid.Parse(c.Query("rw_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "rw_id tidak valid")
	}

	var rows []locModel.RTModel
	if err := h.DB.Where("rw_id = ?", rwID).Order("name").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data RT")
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return helper.NaturalLess(rows[i].Name, rows[j].Name)
	})
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/a/rt/all — semua RT + RW + kelurahan
func (h *AreaController) ListAllRT(c *fiber.Ctx) error {
	var rows []locModel.RTModel
	if err := h.DB.Preload("RW").Preload("RW.Kelurahan").Order("name").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data RT")
	}
	return helper.JsonOK(c, "ok", rows)
}

// POST /api/a/rt
func (h *AreaController) CreateRT(c *fiber.Ctx) error {
	var req locDTO.CreateRTRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	m := locModel.RTModel{Name: req.Name, RWID: req.RWID}
	if err := h.DB.Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat RT")
	}
	return helper.JsonCreated(c, "RT berhasil dibuat", m)
}

// PUT /api/a/rt/:id
func (h *AreaController) UpdateRT(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req locDTO.UpdateRTRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	res := h.DB.Model(&locModel.RTModel{}).Where("id = ?", id).
		Updates(map[string]any{"name": req.Name, "rw_id": req.RWID})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui RT")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "RT tidak ditemukan")
	}
	return helper.JsonUpdated(c, "RT diperbarui", fiber.Map{"id": id, "name": req.Name})
}

// DELETE /api/a/rt/:id
func (h *AreaController) DeleteRT(c *fiber.Ctx) error {
	return h.deleteArea(c, "rt", &locModel.RTModel{},
		"RT masih digunakan oleh entri survei atau akun kader. Hapus data terkait terlebih dahulu.")
}

func (h *AreaController) deleteArea(c *fiber.Ctx, label string, model any, fkMessage string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	res := h.DB.Where("id = ?", id).Delete(model)
	if res.Error != nil {
		if helper.IsForeignKeyViolation(res.Error) {
			return fiber.NewError(fiber.StatusConflict, fkMessage)
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus "+label)
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Data "+label+" tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Data "+label+" dihapus", fiber.Map{"id": id})
}
