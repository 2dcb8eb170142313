// internals/features/entries/service/submission_writer.go
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	entryDTO "sigesit_backend/internals/features/entries/dto"
	entryModel "sigesit_backend/internals/features/entries/model"
	locService "sigesit_backend/internals/features/location/service"
)

/* ==========================
   Error taxonomy
========================== */

var ErrDuplicateKK = errors.New("nomor KK sudah pernah ter-entry")

// DuplicateKKError: nomor KK sudah dipakai entri lain. Deteksinya point
// lookup sebelum tulis (check-then-act) — bukan jaminan transaksional,
// dua kader di dua perangkat tetap bisa lolos berbarengan.
type DuplicateKKError struct {
	KKNumber string
}

func (e *DuplicateKKError) Error() string {
	return fmt.Sprintf("Nomor KK %s sudah pernah ter-entry sebelumnya di sistem.", e.KKNumber)
}

func (e *DuplicateKKError) Unwrap() error { return ErrDuplicateKK }

/* ==========================
   Submission Writer
========================== */

// SubmissionWriter menormalkan payload entri, me-resolve rw lalu rt lewat
// resolver wilayah, dan menulis entri + anggota keluarga sebagai satu
// transaksi. Gagal resolve atau gagal tulis membatalkan seluruh percobaan;
// tidak ada partial commit.
type SubmissionWriter struct {
	DB       *gorm.DB
	Resolver *locService.Resolver
}

func NewSubmissionWriter(db *gorm.DB) *SubmissionWriter {
	return &SubmissionWriter{DB: db, Resolver: locService.NewResolver(db)}
}

// Create menulis entri baru beserta anggota keluarganya.
func (w *SubmissionWriter) Create(ctx context.Context, userID uuid.UUID, req *entryDTO.CreateEntryRequest) (*entryModel.EntryModel, error) {
	entry, members, err := w.prepare(ctx, req, uuid.Nil)
	if err != nil {
		return nil, err
	}
	entry.UserID = userID

	err = w.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("gagal menyimpan entri: %w", err)
		}
		for i := range members {
			members[i].EntryID = entry.ID
		}
		if len(members) > 0 {
			if err := tx.Create(&members).Error; err != nil {
				return fmt.Errorf("gagal menyimpan anggota keluarga: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	entry.FamilyMembers = members
	return entry, nil
}

// Update menimpa entri yang sudah ada; anggota keluarga diganti borongan:
// semua baris lama dihapus lalu set baru ditulis, dalam satu transaksi
// supaya tidak ada jendela "entri tanpa anak" kalau proses mati di tengah.
func (w *SubmissionWriter) Update(ctx context.Context, entryID uuid.UUID, req *entryDTO.UpdateEntryRequest) (*entryModel.EntryModel, error) {
	var existing entryModel.EntryModel
	if err := w.DB.WithContext(ctx).First(&existing, "id = ?", entryID).Error; err != nil {
		return nil, err
	}

	entry, members, err := w.prepare(ctx, req, entryID)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID
	entry.UserID = existing.UserID
	entry.CreatedAt = existing.CreatedAt

	err = w.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(entry).Error; err != nil {
			return fmt.Errorf("gagal memperbarui entri: %w", err)
		}
		if err := tx.Where("entry_id = ?", entryID).Delete(&entryModel.FamilyMemberModel{}).Error; err != nil {
			return fmt.Errorf("gagal menghapus anggota keluarga lama: %w", err)
		}
		for i := range members {
			members[i].EntryID = entryID
		}
		if len(members) > 0 {
			if err := tx.Create(&members).Error; err != nil {
				return fmt.Errorf("gagal menyimpan anggota keluarga: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	entry.FamilyMembers = members
	return entry, nil
}

// CheckDuplicateKK: point lookup nomor KK, mengabaikan entri excludeEntryID
// (dipakai saat update entri yang memang memiliki KK itu).
func (w *SubmissionWriter) CheckDuplicateKK(ctx context.Context, kkNumber string, excludeEntryID uuid.UUID) (bool, error) {
	var row entryModel.FamilyMemberModel
	err := w.DB.WithContext(ctx).
		Select("id", "entry_id").
		Where("kk_number = ?", kkNumber).
		Limit(1).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if excludeEntryID != uuid.Nil && row.EntryID == excludeEntryID {
		return false, nil
	}
	return true, nil
}

/* ==========================
   Normalisasi payload
========================== */

func (w *SubmissionWriter) prepare(ctx context.Context, req *entryDTO.CreateEntryRequest, excludeEntryID uuid.UUID) (*entryModel.EntryModel, []entryModel.FamilyMemberModel, error) {
	dateEntry, err := time.Parse("2006-01-02", req.DateEntry)
	if err != nil {
		return nil, nil, fmt.Errorf("tanggal entri tidak valid: %w", err)
	}
	kelurahanID, err := uuid.Parse(req.KelurahanID)
	if err != nil {
		return nil, nil, fmt.Errorf("kelurahan_id tidak valid: %w", err)
	}

	// Resolve RW dulu, baru RT — RT butuh id RW final sebagai parent.
	rwID, err := w.Resolver.Resolve(ctx, locService.LevelRW, kelurahanID, req.RWID)
	if err != nil {
		return nil, nil, err
	}
	rtID, err := w.Resolver.Resolve(ctx, locService.LevelRT, rwID, req.RTID)
	if err != nil {
		return nil, nil, err
	}

	members, err := w.normalizeMembers(ctx, req.FamilyMembers, excludeEntryID)
	if err != nil {
		return nil, nil, err
	}

	entry := &entryModel.EntryModel{
		DateEntry:     dateEntry,
		EntrySerialNo: req.EntrySerialNo,
		Address:       req.Address,
		KelurahanID:   kelurahanID,
		RWID:          rwID,
		RTID:          rtID,
		SurveyFlags:   req.SurveyFlags,
	}

	// Agregat rumah = jumlahan seluruh KK
	for _, m := range members {
		entry.TotalSouls += m.TotalSouls
		entry.PermanentSouls += m.PermanentSouls
		entry.LatrineCount += m.LatrineCount
	}

	if req.SyncMeta != nil {
		raw, err := sonic.Marshal(req.SyncMeta)
		if err != nil {
			return nil, nil, fmt.Errorf("gagal menyimpan jejak sinkronisasi: %w", err)
		}
		entry.SyncMeta = datatypes.JSON(raw)
	}

	return entry, members, nil
}

func (w *SubmissionWriter) normalizeMembers(ctx context.Context, inputs []entryDTO.FamilyMemberInput, excludeEntryID uuid.UUID) ([]entryModel.FamilyMemberModel, error) {
	// Duplikat di dalam satu form
	seen := map[string]struct{}{}
	for _, in := range inputs {
		if in.KKNumber == "" {
			continue
		}
		if _, dup := seen[in.KKNumber]; dup {
			return nil, &DuplicateKKError{KKNumber: in.KKNumber}
		}
		seen[in.KKNumber] = struct{}{}
	}

	members := make([]entryModel.FamilyMemberModel, 0, len(inputs))
	for _, in := range inputs {
		m := entryModel.FamilyMemberModel{
			KKNumber:        in.KKNumber,
			HeadOfFamily:    in.HeadOfFamily,
			TotalSouls:      in.TotalSouls,
			PermanentSouls:  in.PermanentSouls,
			LatrineCount:    in.LatrineCount,
			IsAutoGenerated: in.NoKKCard,
		}

		if in.NoKKCard && m.KKNumber == "" {
			m.KKNumber = synthesizeKKNumber()
		}

		// Duplikat lintas entri — hanya untuk KK asli (bukan sintesis)
		if m.KKNumber != "" && !m.IsAutoGenerated {
			dup, err := w.CheckDuplicateKK(ctx, m.KKNumber, excludeEntryID)
			if err != nil {
				return nil, fmt.Errorf("gagal memeriksa duplikat KK: %w", err)
			}
			if dup {
				return nil, &DuplicateKKError{KKNumber: m.KKNumber}
			}
		}

		members = append(members, m)
	}
	return members, nil
}

// synthesizeKKNumber: 10 digit acak + 6 digit terakhir timestamp, total 16,
// untuk rumah tanpa kartu keluarga.
func synthesizeKKNumber() string {
	randomPart := fmt.Sprintf("%010d", rand.Int63n(10_000_000_000))
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return randomPart + ts[len(ts)-6:]
}
