// internals/features/entries/service/submission_writer_test.go
package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	entryDTO "sigesit_backend/internals/features/entries/dto"
	entryModel "sigesit_backend/internals/features/entries/model"
	locModel "sigesit_backend/internals/features/location/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&locModel.KelurahanModel{},
		&locModel.RWModel{},
		&locModel.RTModel{},
		&entryModel.EntryModel{},
		&entryModel.FamilyMemberModel{},
	))
	return db
}

func seedKelurahan(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	kel := locModel.KelurahanModel{Name: "Padasuka"}
	require.NoError(t, db.Create(&kel).Error)
	return kel.ID
}

func baseRequest(kelID uuid.UUID, members ...entryDTO.FamilyMemberInput) *entryDTO.CreateEntryRequest {
	return &entryDTO.CreateEntryRequest{
		DateEntry:     "2025-03-10",
		EntrySerialNo: 1,
		Address:       "Jl. Padasuka No. 12",
		KelurahanID:   kelID.String(),
		RWID:          "05",
		RTID:          "3",
		FamilyMembers: members,
	}
}

func TestCreateSumsHouseholdAggregates(t *testing.T) {
	db := openTestDB(t)
	w := NewSubmissionWriter(db)
	kelID := seedKelurahan(t, db)

	req := baseRequest(kelID,
		entryDTO.FamilyMemberInput{KKNumber: "3273011234567801", HeadOfFamily: "Asep", TotalSouls: 4, PermanentSouls: 3, LatrineCount: 1},
		entryDTO.FamilyMemberInput{KKNumber: "3273011234567802", HeadOfFamily: "Euis", TotalSouls: 2, PermanentSouls: 2, LatrineCount: 1},
	)

	entry, err := w.Create(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	assert.Equal(t, 6, entry.TotalSouls)
	assert.Equal(t, 5, entry.PermanentSouls)
	assert.Equal(t, 2, entry.LatrineCount)
	assert.Len(t, entry.FamilyMembers, 2)

	// RW/RT dibuat on-the-fly oleh resolver
	var rw locModel.RWModel
	require.NoError(t, db.First(&rw, "id = ?", entry.RWID).Error)
	assert.Equal(t, "05", rw.Name)
	var rt locModel.RTModel
	require.NoError(t, db.First(&rt, "id = ?", entry.RTID).Error)
	assert.Equal(t, "3", rt.Name)
}

func TestCreateSynthesizesKKWhenNoCard(t *testing.T) {
	db := openTestDB(t)
	w := NewSubmissionWriter(db)
	kelID := seedKelurahan(t, db)

	req := baseRequest(kelID,
		entryDTO.FamilyMemberInput{HeadOfFamily: "Dadang", TotalSouls: 3, NoKKCard: true},
	)

	entry, err := w.Create(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	require.Len(t, entry.FamilyMembers, 1)

	m := entry.FamilyMembers[0]
	assert.True(t, m.IsAutoGenerated)
	assert.Regexp(t, regexp.MustCompile(`^\d{16}$`), m.KKNumber)
}

func TestCreateRejectsDuplicateKKInForm(t *testing.T) {
	db := openTestDB(t)
	w := NewSubmissionWriter(db)
	kelID := seedKelurahan(t, db)

	req := baseRequest(kelID,
		entryDTO.FamilyMemberInput{KKNumber: "3273019999999901", HeadOfFamily: "Asep"},
		entryDTO.FamilyMemberInput{KKNumber: "3273019999999901", HeadOfFamily: "Euis"},
	)

	_, err := w.Create(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateKK))

	var count int64
	db.Model(&entryModel.EntryModel{}).Count(&count)
	assert.Zero(t, count, "entri tidak boleh tersimpan saat ditolak")
}

func TestCreateRejectsDuplicateKKAcrossEntries(t *testing.T) {
	db := openTestDB(t)
	w := NewSubmissionWriter(db)
	kelID := seedKelurahan(t, db)

	first := baseRequest(kelID,
		entryDTO.FamilyMemberInput{KKNumber: "3273018888888801", HeadOfFamily: "Asep", TotalSouls: 4},
	)
	_, err := w.Create(context.Background(), uuid.New(), first)
	require.NoError(t, err)

	second := baseRequest(kelID,
		entryDTO.FamilyMemberInput{KKNumber: "3273018888888801", HeadOfFamily: "Ujang", TotalSouls: 2},
	)
	_, err = w.Create(context.Background(), uuid.New(), second)
	require.Error(t, err)

	var dup *DuplicateKKError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "3273018888888801", dup.KKNumber)
}

func TestUpdateReplacesFamilyMembersWholesale(t *testing.T) {
	db := openTestDB(t)
	w := NewSubmissionWriter(db)
	kelID := seedKelurahan(t, db)
	userID := uuid.New()

	created, err := w.Create(context.Background(), userID, baseRequest(kelID,
		entryDTO.FamilyMemberInput{KKNumber: "3273017777777701", HeadOfFamily: "Asep", TotalSouls: 4},
		entryDTO.FamilyMemberInput{KKNumber: "3273017777777702", HeadOfFamily: "Euis", TotalSouls: 2},
	))
	require.NoError(t, err)

	update := baseRequest(kelID,
		entryDTO.FamilyMemberInput{KKNumber: "3273017777777703", HeadOfFamily: "Cecep", TotalSouls: 5, LatrineCount: 2},
	)
	updated, err := w.Update(context.Background(), created.ID, update)
	require.NoError(t, err)

	assert.Equal(t, userID, updated.UserID, "pemilik entri tidak boleh berubah")
	assert.Equal(t, 5, updated.TotalSouls)
	assert.Equal(t, 2, updated.LatrineCount)

	var members []entryModel.FamilyMemberModel
	require.NoError(t, db.Where("entry_id = ?", created.ID).Find(&members).Error)
	require.Len(t, members, 1, "anggota lama harus terganti borongan")
	assert.Equal(t, "3273017777777703", members[0].KKNumber)
}

func TestUpdateKeepsOwnKKWithoutDuplicateError(t *testing.T) {
	db := openTestDB(t)
	w := NewSubmissionWriter(db)
	kelID := seedKelurahan(t, db)

	created, err := w.Create(context.Background(), uuid.New(), baseRequest(kelID,
		entryDTO.FamilyMemberInput{KKNumber: "3273016666666601", HeadOfFamily: "Asep", TotalSouls: 4},
	))
	require.NoError(t, err)

	// KK yang sama dikirim ulang saat edit entri yang memilikinya
	update := baseRequest(kelID,
		entryDTO.FamilyMemberInput{KKNumber: "3273016666666601", HeadOfFamily: "Asep", TotalSouls: 5},
	)
	updated, err := w.Update(context.Background(), created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.TotalSouls)
}

func TestCreateStoresSyncMeta(t *testing.T) {
	db := openTestDB(t)
	w := NewSubmissionWriter(db)
	kelID := seedKelurahan(t, db)

	req := baseRequest(kelID,
		entryDTO.FamilyMemberInput{KKNumber: "3273015555555501", HeadOfFamily: "Asep"},
	)
	req.SyncMeta = &entryDTO.SyncMetaInput{
		EnqueuedAt:  time.Date(2025, 3, 9, 21, 0, 0, 0, time.UTC),
		Device:      "tablet-kader-01",
		QueueItemID: 7,
	}

	entry, err := w.Create(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	var stored entryModel.EntryModel
	require.NoError(t, db.First(&stored, "id = ?", entry.ID).Error)
	assert.Contains(t, string(stored.SyncMeta), "tablet-kader-01")
}

func TestCheckDuplicateKKExcludesOwnEntry(t *testing.T) {
	db := openTestDB(t)
	w := NewSubmissionWriter(db)
	kelID := seedKelurahan(t, db)

	created, err := w.Create(context.Background(), uuid.New(), baseRequest(kelID,
		entryDTO.FamilyMemberInput{KKNumber: "3273014444444401", HeadOfFamily: "Asep"},
	))
	require.NoError(t, err)

	dup, err := w.CheckDuplicateKK(context.Background(), "3273014444444401", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, dup)

	dup, err = w.CheckDuplicateKK(context.Background(), "3273014444444401", created.ID)
	require.NoError(t, err)
	assert.False(t, dup)

	dup, err = w.CheckDuplicateKK(context.Background(), "3273010000000000", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, dup)
}
