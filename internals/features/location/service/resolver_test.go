// internals/features/location/service/resolver_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

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
	))
	return db
}

func seedKelurahan(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	kel := locModel.KelurahanModel{Name: "Padasuka"}
	require.NoError(t, db.Create(&kel).Error)
	return kel.ID
}

func TestResolvePassthroughUUID(t *testing.T) {
	// DB sengaja tanpa tabel: passthrough id kanonik tidak boleh
	// menyentuh store sama sekali.
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	r := NewResolver(db)

	want := uuid.New()
	got, err := r.Resolve(context.Background(), LevelRW, uuid.New(), want.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveRejectsInvalidNames(t *testing.T) {
	db := openTestDB(t)
	r := NewResolver(db)
	parent := seedKelurahan(t, db)

	for _, bad := range []string{"", "  ", "0", "NaN", "null", "NULL"} {
		_, err := r.Resolve(context.Background(), LevelRW, parent, bad)
		require.Error(t, err, "input %q", bad)
		assert.True(t, errors.Is(err, ErrValidation), "input %q harus ErrValidation", bad)

		var ve *ValidationError
		assert.True(t, errors.As(err, &ve))
	}

	var count int64
	db.Model(&locModel.RWModel{}).Count(&count)
	assert.Zero(t, count, "input tidak valid tidak boleh membuat baris")
}

func TestResolveCreateThenReuse(t *testing.T) {
	db := openTestDB(t)
	r := NewResolver(db)
	parent := seedKelurahan(t, db)

	first, err := r.Resolve(context.Background(), LevelRW, parent, "07")
	require.NoError(t, err)

	second, err := r.Resolve(context.Background(), LevelRW, parent, "07")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int64
	db.Model(&locModel.RWModel{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestResolvePaddedLookup(t *testing.T) {
	db := openTestDB(t)
	r := NewResolver(db)
	parent := seedKelurahan(t, db)

	// Baris disimpan dengan label berangka nol
	canonical, err := r.Resolve(context.Background(), LevelRW, parent, "05")
	require.NoError(t, err)

	// Ketikan tanpa nol harus mendarat di baris yang sama
	got, err := r.Resolve(context.Background(), LevelRW, parent, "5")
	require.NoError(t, err)
	assert.Equal(t, canonical, got)

	var count int64
	db.Model(&locModel.RWModel{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestResolveScopedToParent(t *testing.T) {
	db := openTestDB(t)
	r := NewResolver(db)

	kelA := seedKelurahan(t, db)
	kelB := locModel.KelurahanModel{Name: "Cikutra"}
	require.NoError(t, db.Create(&kelB).Error)

	idA, err := r.Resolve(context.Background(), LevelRW, kelA, "01")
	require.NoError(t, err)
	idB, err := r.Resolve(context.Background(), LevelRW, kelB.ID, "01")
	require.NoError(t, err)

	assert.NotEqual(t, idA, idB, "nama sama di parent beda harus jadi baris beda")
}

func TestResolveRTUnderRW(t *testing.T) {
	db := openTestDB(t)
	r := NewResolver(db)
	parent := seedKelurahan(t, db)

	rwID, err := r.Resolve(context.Background(), LevelRW, parent, "03")
	require.NoError(t, err)

	rtID, err := r.Resolve(context.Background(), LevelRT, rwID, "2")
	require.NoError(t, err)

	var rt locModel.RTModel
	require.NoError(t, db.First(&rt, "id = ?", rtID).Error)
	assert.Equal(t, rwID, rt.RWID)
	assert.Equal(t, "2", rt.Name)
}

func TestResolveRecoversFromInsertRace(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX idx_rw_parent_name ON rw (kelurahan_id, name)`).Error)

	r := NewResolver(db)
	parent := seedKelurahan(t, db)

	// Simulasi pemanggil lain menang balapan: tepat sebelum insert
	// resolver mendarat, baris dengan nama sama sudah ada.
	winnerID := uuid.New()
	raced := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").
		Register("test_seed_race", func(tx *gorm.DB) {
			if raced || tx.Statement.Table != "rw" {
				return
			}
			raced = true
			db.Exec(
				`INSERT INTO rw (id, kelurahan_id, name, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
				winnerID, parent, "09")
		}))

	got, err := r.Resolve(context.Background(), LevelRW, parent, "09")
	require.NoError(t, err)
	assert.Equal(t, winnerID, got, "yang kalah balapan harus memungut id pemenang")

	var count int64
	db.Model(&locModel.RWModel{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
