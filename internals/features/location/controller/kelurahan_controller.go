// internals/features/location/controller/kelurahan_controller.go
package controller

import (
	"errors"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	locDTO "sigesit_backend/internals/features/location/dto"
	locModel "sigesit_backend/internals/features/location/model"
	helper "sigesit_backend/internals/helpers"
)

type KelurahanController struct {
	DB *gorm.DB
}

func NewKelurahanController(db *gorm.DB) *KelurahanController {
	return &KelurahanController{DB: db}
}

// GET /api/u/kelurahan
func (h *KelurahanController) List(c *fiber.Ctx) error {
	var rows []locModel.KelurahanModel
	if err := h.DB.Order("name").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data kelurahan")
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return helper.NaturalLess(rows[i].Name, rows[j].Name)
	})
	return helper.JsonOK(c, "ok", rows)
}

// POST /api/a/kelurahan
func (h *KelurahanController) Create(c *fiber.Ctx) error {
	var req locDTO.CreateKelurahanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	m := locModel.KelurahanModel{Name: req.Name}
	if err := h.DB.Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat kelurahan")
	}
	return helper.JsonCreated(c, "Kelurahan berhasil dibuat", m)
}

// PUT /api/a/kelurahan/:id
func (h *KelurahanController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req locDTO.UpdateKelurahanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	res := h.DB.Model(&locModel.KelurahanModel{}).Where("id = ?", id).Update("name", req.Name)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui kelurahan")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Kelurahan tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Kelurahan diperbarui", fiber.Map{"id": id, "name": req.Name})
}

// DELETE /api/a/kelurahan/:id
func (h *KelurahanController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var m locModel.KelurahanModel
	if err := h.DB.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Kelurahan tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data kelurahan")
	}

	if err := h.DB.Delete(&m).Error; err != nil {
		if helper.IsForeignKeyViolation(err) {
			return fiber.NewError(fiber.StatusConflict,
				"Kelurahan masih digunakan oleh data RW, entri survei, atau akun kader. Hapus data terkait terlebih dahulu.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus kelurahan")
	}
	return helper.JsonDeleted(c, "Kelurahan dihapus", fiber.Map{"id": id})
}
