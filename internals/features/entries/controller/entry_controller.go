// internals/features/entries/controller/entry_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	entryDTO "sigesit_backend/internals/features/entries/dto"
	entryModel "sigesit_backend/internals/features/entries/model"
	entryService "sigesit_backend/internals/features/entries/service"
	locService "sigesit_backend/internals/features/location/service"
	helper "sigesit_backend/internals/helpers"
	"sigesit_backend/internals/constants"
)

type EntryController struct {
	DB     *gorm.DB
	Writer *entryService.SubmissionWriter
}

func NewEntryController(db *gorm.DB) *EntryController {
	return &EntryController{DB: db, Writer: entryService.NewSubmissionWriter(db)}
}

/* ===================== HANDLERS ===================== */

// POST /api/u/entries
func (h *EntryController) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req entryDTO.CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	entry, err := h.Writer.Create(c.UserContext(), userID, &req)
	if err != nil {
		return writerError(c, err)
	}
	return helper.JsonCreated(c, "Entri berhasil disimpan", entry)
}

// PUT /api/u/entries/:id
func (h *EntryController) Update(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := h.ensureOwnership(c, entryID); err != nil {
		return err
	}

	var req entryDTO.UpdateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	entry, err := h.Writer.Update(c.UserContext(), entryID, &req)
	if err != nil {
		return writerError(c, err)
	}
	return helper.JsonUpdated(c, "Entri diperbarui", entry)
}

// GET /api/u/entries?date_from=&date_to=&page=&per_page=&sort_by=&sort_order=
// Admin melihat semua entri; kader hanya miliknya sendiri.
func (h *EntryController) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var q entryDTO.ListEntriesQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := helper.Validate(&q); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMessages(err))
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	allowedSort := map[string]string{
		"created_at": "created_at",
		"date_entry": "date_entry",
		"serial_no":  "entry_serial_no",
	}
	orderClause, oerr := p.SafeOrderClause(allowedSort, "created_at")
	if oerr != nil {
		return fiber.NewError(fiber.StatusBadRequest, "sort_by tidak valid")
	}
	orderExpr := strings.TrimPrefix(orderClause, "ORDER BY ")

	base := h.DB.WithContext(c.UserContext()).Model(&entryModel.EntryModel{})
	if !isAdmin(c) {
		base = base.Where("user_id = ?", userID)
	}
	// Filter tanggal di server supaya payload ke klien tetap ringan
	if q.DateFrom != "" {
		base = base.Where("date_entry >= ?", q.DateFrom)
	}
	if q.DateTo != "" {
		// batas atas inklusif: bandingkan eksklusif terhadap hari berikutnya
		if d, derr := time.Parse("2006-01-02", q.DateTo); derr == nil {
			base = base.Where("date_entry < ?", d.AddDate(0, 0, 1).Format("2006-01-02"))
		}
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung data entri")
	}

	var rows []entryModel.EntryModel
	if err := base.
		Preload("Kelurahan").
		Preload("RW").
		Preload("RT").
		Preload("FamilyMembers").
		Order(orderExpr).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data entri")
	}

	meta := helper.BuildMeta(total, p)
	return helper.JsonList(c, "ok", rows, meta)
}

// GET /api/u/entries/:id
func (h *EntryController) Detail(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var entry entryModel.EntryModel
	err = h.DB.WithContext(c.UserContext()).
		Preload("Kelurahan").
		Preload("RW").
		Preload("RT").
		Preload("FamilyMembers").
		First(&entry, "id = ?", entryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Entri tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil entri")
	}

	if !isAdmin(c) {
		userID, err := currentUserID(c)
		if err != nil {
			return err
		}
		if entry.UserID != userID {
			return fiber.NewError(fiber.StatusForbidden, "Entri ini bukan milik Anda")
		}
	}
	return helper.JsonOK(c, "ok", entry)
}

// DELETE /api/u/entries/:id — anggota keluarga dihapus dulu (FK).
func (h *EntryController) Delete(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := h.ensureOwnership(c, entryID); err != nil {
		return err
	}

	err = h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_id = ?", entryID).Delete(&entryModel.FamilyMemberModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", entryID).Delete(&entryModel.EntryModel{}).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus entri")
	}
	return helper.JsonDeleted(c, "Entri dihapus", fiber.Map{"id": entryID})
}

// GET /api/u/entries/check-kk?kk_number=...&exclude_entry_id=...
// Dipakai form entri untuk peringatan dini sebelum submit.
func (h *EntryController) CheckKK(c *fiber.Ctx) error {
	kk := strings.TrimSpace(c.Query("kk_number"))
	if kk == "" {
		return fiber.NewError(fiber.StatusBadRequest, "kk_number wajib diisi")
	}
	exclude := uuid.Nil
	if raw := c.Query("exclude_entry_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "exclude_entry_id tidak valid")
		}
		exclude = parsed
	}

	dup, err := h.Writer.CheckDuplicateKK(c.UserContext(), kk, exclude)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa nomor KK")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"kk_number": kk, "duplicate": dup})
}

/* ===================== HELPERS ===================== */

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid UUID format")
	}
	return id, nil
}

func isAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals("role").(string)
	return constants.IsAdminRole(role)
}

func (h *EntryController) ensureOwnership(c *fiber.Ctx, entryID uuid.UUID) error {
	if isAdmin(c) {
		return nil
	}
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var entry entryModel.EntryModel
	if err := h.DB.Select("id", "user_id").First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Entri tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil entri")
	}
	if entry.UserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Entri ini bukan milik Anda")
	}
	return nil
}

// writerError memetakan error service ke response HTTP dengan penyebab
// asli tetap terbawa di pesan.
func writerError(c *fiber.Ctx, err error) error {
	var dupErr *entryService.DuplicateKKError
	if errors.As(err, &dupErr) {
		return fiber.NewError(fiber.StatusConflict, dupErr.Error())
	}
	var valErr *locService.ValidationError
	if errors.As(err, &valErr) {
		return fiber.NewError(fiber.StatusBadRequest, valErr.Error())
	}
	var resErr *locService.ResolutionError
	if errors.As(err, &resErr) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, resErr.Error())
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Entri tidak ditemukan")
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
