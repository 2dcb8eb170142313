// internals/features/profile/controller/pkm_profile_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	profileDTO "sigesit_backend/internals/features/profile/dto"
	profileModel "sigesit_backend/internals/features/profile/model"
	helper "sigesit_backend/internals/helpers"
)

type PKMProfileController struct {
	DB *gorm.DB
}

func NewPKMProfileController(db *gorm.DB) *PKMProfileController {
	return &PKMProfileController{DB: db}
}

// defaultProfile: fallback ketika baris profil belum pernah diisi,
// supaya kop laporan tidak pernah kosong.
func defaultProfile() *profileModel.PKMProfileModel {
	return &profileModel.PKMProfileModel{
		ID:   profileModel.SingletonID,
		Name: "PUSKESMAS",
	}
}

// GET /api/u/pkm-profile
// ?skip_fallback=true → 404 bila baris belum ada (dipakai form pengaturan
// agar tidak menampilkan nilai default seolah tersimpan).
func (ctl *PKMProfileController) Get(c *fiber.Ctx) error {
	var profile profileModel.PKMProfileModel
	err := ctl.DB.WithContext(c.Context()).
		First(&profile, "id = ?", profileModel.SingletonID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if c.QueryBool("skip_fallback") {
				return helper.JsonError(c, fiber.StatusNotFound, "Profil PKM belum diisi")
			}
			return helper.JsonOK(c, "OK", defaultProfile())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil profil PKM")
	}

	return helper.JsonOK(c, "OK", profile)
}

// PUT /api/a/pkm-profile
// Upsert satu baris profil. Menerima multipart: field teks + file "logo" opsional.
func (ctl *PKMProfileController) Upsert(c *fiber.Ctx) error {
	var req profileDTO.UpsertPKMProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	var existing profileModel.PKMProfileModel
	found := true
	if err := ctl.DB.WithContext(c.Context()).
		First(&existing, "id = ?", profileModel.SingletonID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil profil PKM")
		}
		found = false
	}

	logoURL := existing.LogoURL
	if fh, err := c.FormFile("logo"); err == nil && fh != nil {
		newURL, uerr := helper.UploadImageToSupabase("pkm-logo", fh)
		if uerr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, uerr.Error())
		}
		// Logo lama dihapus best-effort, gagal hapus bukan alasan menolak upsert
		if logoURL != nil {
			if path := helper.ExtractSupabaseStoragePath(*logoURL); path != "" {
				if derr := helper.DeleteFromSupabase("image", path); derr != nil {
					log.Println("[WARN] gagal hapus logo lama:", derr)
				}
			}
		}
		logoURL = &newURL
	}

	profile := profileModel.PKMProfileModel{
		ID:       profileModel.SingletonID,
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		HeadName: req.HeadName,
		HeadNIP:  req.HeadNIP,
		LogoURL:  logoURL,
	}

	if found {
		profile.CreatedAt = existing.CreatedAt
		if err := ctl.DB.WithContext(c.Context()).Save(&profile).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui profil PKM")
		}
		return helper.JsonUpdated(c, "Profil PKM diperbarui", profile)
	}

	if err := ctl.DB.WithContext(c.Context()).Create(&profile).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan profil PKM")
	}
	return helper.JsonCreated(c, "Profil PKM disimpan", profile)
}
