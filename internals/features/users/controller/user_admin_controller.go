// internals/features/users/controller/user_admin_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sigesit_backend/internals/constants"
	userDTO "sigesit_backend/internals/features/users/dto"
	userModel "sigesit_backend/internals/features/users/model"
	helper "sigesit_backend/internals/helpers"
)

type UserAdminController struct {
	DB *gorm.DB
}

func NewUserAdminController(db *gorm.DB) *UserAdminController {
	return &UserAdminController{DB: db}
}

/* ===================== LIST ===================== */

// GET /api/a/users
// Daftar akun kader + admin, terbaru dulu. ?role=kader untuk filter.
func (ctl *UserAdminController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	allowedSort := map[string]string{
		"created_at": "created_at",
		"name":       "name",
		"username":   "username",
	}
	orderClause, oerr := p.SafeOrderClause(allowedSort, "created_at")
	if oerr != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "sort_by tidak valid")
	}
	orderExpr := strings.TrimPrefix(orderClause, "ORDER BY ")

	base := ctl.DB.WithContext(c.Context()).
		Model(&userModel.UserProfileModel{})

	if role := strings.TrimSpace(c.Query("role")); role != "" {
		base = base.Where("role = ?", role)
	}
	if kel := strings.TrimSpace(c.Query("kelurahan_id")); kel != "" {
		kelID, err := uuid.Parse(kel)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "kelurahan_id tidak valid")
		}
		base = base.Where("kelurahan_id = ?", kelID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung daftar akun")
	}

	var users []userModel.UserProfileModel
	if err := base.
		Preload("Kelurahan").Preload("RW").Preload("RT").
		Order(orderExpr).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar akun")
	}

	meta := helper.BuildMeta(total, p)
	return helper.JsonList(c, "OK", users, meta)
}

/* ===================== CREATE ===================== */

// POST /api/a/users
func (ctl *UserAdminController) Create(c *fiber.Ctx) error {
	var req userDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	user := req.ToModel(string(hash))
	if err := ctl.DB.WithContext(c.Context()).Create(user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "NIK atau username sudah terdaftar")
		}
		if helper.IsForeignKeyViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Wilayah yang dipilih tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}

	return helper.JsonCreated(c, "Akun berhasil dibuat", user)
}

/* ===================== STATUS ===================== */

// PATCH /api/a/users/:id/status
func (ctl *UserAdminController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID akun tidak valid")
	}

	var req userDTO.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}

	res := ctl.DB.WithContext(c.Context()).
		Model(&userModel.UserProfileModel{}).
		Where("id = ?", id).
		Update("is_active", req.IsActive)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui status akun")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Akun tidak ditemukan")
	}

	msg := "Akun dinonaktifkan"
	if req.IsActive {
		msg = "Akun diaktifkan"
	}
	return helper.JsonUpdated(c, msg, fiber.Map{"id": id, "is_active": req.IsActive})
}

/* ===================== RESET PASSWORD / HAPUS ===================== */

// POST /api/a/users/manage
// Reset password atau hapus akun kader. Pemanggil diverifikasi ulang:
// harus masih aktif dan ber-role admin.
func (ctl *UserAdminController) Manage(c *fiber.Ctx) error {
	var req userDTO.AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	if err := ctl.verifyCaller(c); err != nil {
		return err
	}

	targetID, _ := uuid.Parse(req.UserID)

	var target userModel.UserProfileModel
	if err := ctl.DB.WithContext(c.Context()).First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Akun tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data akun")
	}

	if req.Action == "delete" {
		if err := ctl.DB.WithContext(c.Context()).Delete(&target).Error; err != nil {
			if helper.IsForeignKeyViolation(err) {
				return helper.JsonError(c, fiber.StatusConflict,
					"Akun masih memiliki entri survei. Nonaktifkan akun sebagai gantinya.")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus akun")
		}
		return helper.JsonDeleted(c, "Akun berhasil dihapus", fiber.Map{"id": target.ID})
	}

	if strings.TrimSpace(req.Password) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Password baru wajib diisi")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	display := req.Password
	if err := ctl.DB.WithContext(c.Context()).
		Model(&target).
		Updates(map[string]any{
			"password":         string(hash),
			"password_display": display,
		}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui password")
	}

	return helper.JsonUpdated(c, "Password berhasil diperbarui", fiber.Map{"id": target.ID})
}

// verifyCaller memastikan akun pemanggil masih aktif dan ber-role admin.
func (ctl *UserAdminController) verifyCaller(c *fiber.Ctx) error {
	rawID, _ := c.Locals("user_id").(string)
	callerID, err := uuid.Parse(rawID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi tidak valid")
	}

	var caller userModel.UserProfileModel
	if err := ctl.DB.WithContext(c.Context()).
		Select("id", "role", "is_active").
		First(&caller, "id = ?", callerID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi tidak valid")
	}
	if !caller.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}
	if !constants.IsAdminRole(caller.Role) {
		return helper.JsonError(c, fiber.StatusForbidden, "Hanya admin yang dapat mengelola akun")
	}
	return nil
}
