// internals/features/reports/service/report_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

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

type seededArea struct {
	kel locModel.KelurahanModel
	rw  locModel.RWModel
	rt  locModel.RTModel
}

func seedArea(t *testing.T, db *gorm.DB, name string) seededArea {
	t.Helper()
	kel := locModel.KelurahanModel{Name: name}
	require.NoError(t, db.Create(&kel).Error)
	rw := locModel.RWModel{KelurahanID: kel.ID, Name: "01"}
	require.NoError(t, db.Create(&rw).Error)
	rt := locModel.RTModel{RWID: rw.ID, Name: "01"}
	require.NoError(t, db.Create(&rt).Error)
	return seededArea{kel: kel, rw: rw, rt: rt}
}

func seedEntry(t *testing.T, db *gorm.DB, area seededArea, date string, souls int, flags entryModel.SurveyFlags) entryModel.EntryModel {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)

	e := entryModel.EntryModel{
		UserID:      uuid.New(),
		DateEntry:   d,
		Address:     "Jl. Test",
		KelurahanID: area.kel.ID,
		RWID:        area.rw.ID,
		RTID:        area.rt.ID,
		TotalSouls:  souls,
		SurveyFlags: flags,
	}
	require.NoError(t, db.Create(&e).Error)

	m := entryModel.FamilyMemberModel{
		EntryID:      e.ID,
		KKNumber:     uuid.New().String()[:16],
		HeadOfFamily: "Kepala",
		TotalSouls:   souls,
	}
	require.NoError(t, db.Create(&m).Error)
	return e
}

func allPillarFlags() entryModel.SurveyFlags {
	return entryModel.SurveyFlags{
		JambanLeherAngsa: true, JambanSeptikAman: true,
		CtpsSarana: true, CtpsAirMengalir: true, CtpsSabun: true,
		AirLayakPerpipaan: true,
		SampahTidakSerak: true, SampahOlahAman: true,
		LimbahTidakGenang: true, LimbahSaluranKedap: true,
	}
}

func TestBuildRecapTotalsAndPillars(t *testing.T) {
	db := openTestDB(t)
	svc := NewReportService(db)

	padasuka := seedArea(t, db, "Padasuka")
	cikutra := seedArea(t, db, "Cikutra")

	seedEntry(t, db, padasuka, "2025-03-01", 4, allPillarFlags())
	seedEntry(t, db, padasuka, "2025-03-02", 3, entryModel.SurveyFlags{
		JambanLeherAngsa: true, JambanSeptikAman: true, // hanya jamban sehat
	})
	seedEntry(t, db, cikutra, "2025-03-03", 5, entryModel.SurveyFlags{})

	report, err := svc.BuildRecap(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalEntries)
	assert.Equal(t, 3, report.TotalFamilies)
	assert.Equal(t, 12, report.TotalSouls)

	require.Len(t, report.Pillars, 5)
	assert.Equal(t, "Jamban Sehat", report.Pillars[0].Label)
	assert.Equal(t, 2, report.Pillars[0].Achieved)
	assert.InDelta(t, 66.66, report.Pillars[0].Percent, 0.1)
	assert.Equal(t, 1, report.Pillars[1].Achieved, "hanya entri lengkap yang lolos CTPS")

	require.Len(t, report.PerKelurahan, 2)
	// urut alfabet nama kelurahan
	assert.Equal(t, "Cikutra", report.PerKelurahan[0].KelurahanName)
	assert.Equal(t, "Padasuka", report.PerKelurahan[1].KelurahanName)
	assert.Equal(t, 2, report.PerKelurahan[1].Entries)
	assert.Equal(t, 7, report.PerKelurahan[1].TotalSouls)
	assert.Equal(t, 2, report.PerKelurahan[1].Pillars[0])
}

func TestPillarAchievements(t *testing.T) {
	cases := []struct {
		name  string
		flags entryModel.SurveyFlags
		want  [5]bool
	}{
		{
			name:  "jamban sehat lolos dengan septik belum disedot",
			flags: entryModel.SurveyFlags{JambanLeherAngsa: true, JambanSeptikTidakSedot: true},
			want:  [5]bool{true, false, false, false, false},
		},
		{
			name:  "jamban tanpa leher angsa tidak lolos",
			flags: entryModel.SurveyFlags{JambanBabJamban: true, JambanSeptikAman: true},
			want:  [5]bool{},
		},
		{
			name:  "ctps tidak mensyaratkan mampu praktek",
			flags: entryModel.SurveyFlags{CtpsSarana: true, CtpsAirMengalir: true, CtpsSabun: true},
			want:  [5]bool{false, true, false, false, false},
		},
		{
			name:  "air layak cukup satu sumber tanpa olah air",
			flags: entryModel.SurveyFlags{AirLayakHujan: true},
			want:  [5]bool{false, false, true, false, false},
		},
		{
			name:  "sampah aman butuh olah aman, bukan wadah tertutup",
			flags: entryModel.SurveyFlags{SampahTidakSerak: true, SampahOlahAman: true},
			want:  [5]bool{false, false, false, true, false},
		},
		{
			name:  "sampah wadah tertutup saja tidak lolos",
			flags: entryModel.SurveyFlags{SampahTidakSerak: true, SampahTutupKuat: true},
			want:  [5]bool{},
		},
		{
			name:  "limbah butuh saluran kedap, resapan ipal saja tidak cukup",
			flags: entryModel.SurveyFlags{LimbahTidakGenang: true, LimbahResapanIpal: true},
			want:  [5]bool{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, pillarAchievements(tc.flags))
		})
	}
}

func TestBuildRecapFamilyFloor(t *testing.T) {
	db := openTestDB(t)
	svc := NewReportService(db)
	area := seedArea(t, db, "Padasuka")

	// entri tanpa baris anggota keluarga
	d, err := time.Parse("2006-01-02", "2025-03-01")
	require.NoError(t, err)
	require.NoError(t, db.Create(&entryModel.EntryModel{
		UserID:      uuid.New(),
		DateEntry:   d,
		Address:     "Jl. Test",
		KelurahanID: area.kel.ID,
		RWID:        area.rw.ID,
		RTID:        area.rt.ID,
	}).Error)

	report, err := svc.BuildRecap(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalEntries)
	assert.Equal(t, 1, report.TotalFamilies, "entri tanpa anggota tetap dihitung satu keluarga")
	require.Len(t, report.PerKelurahan, 1)
	assert.Equal(t, 1, report.PerKelurahan[0].Families)
}

func TestBuildRecapDateRange(t *testing.T) {
	db := openTestDB(t)
	svc := NewReportService(db)
	area := seedArea(t, db, "Padasuka")

	seedEntry(t, db, area, "2025-02-28", 2, entryModel.SurveyFlags{})
	seedEntry(t, db, area, "2025-03-05", 3, entryModel.SurveyFlags{})
	seedEntry(t, db, area, "2025-03-31", 4, entryModel.SurveyFlags{})
	seedEntry(t, db, area, "2025-04-01", 5, entryModel.SurveyFlags{})

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	report, err := svc.BuildRecap(context.Background(), &from, &to)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalEntries, "rentang inklusif di kedua ujung")
	assert.Equal(t, 7, report.TotalSouls)
	require.NotNil(t, report.DateFrom)
	assert.Equal(t, "2025-03-01", *report.DateFrom)
}

func TestBuildRecapEmpty(t *testing.T) {
	db := openTestDB(t)
	svc := NewReportService(db)

	report, err := svc.BuildRecap(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Zero(t, report.TotalEntries)
	require.Len(t, report.Pillars, 5)
	assert.Zero(t, report.Pillars[0].Percent, "persentase tidak boleh NaN saat kosong")
	assert.Empty(t, report.PerKelurahan)
}
