// internals/features/reports/service/report_service.go
package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	entryModel "sigesit_backend/internals/features/entries/model"
)

/* ==========================
   Bentuk laporan
========================== */

type PillarStat struct {
	Label    string  `json:"label"`
	Achieved int     `json:"achieved"`
	Percent  float64 `json:"percent"`
}

type AreaRecap struct {
	KelurahanID    string `json:"kelurahan_id"`
	KelurahanName  string `json:"kelurahan_name"`
	Entries        int    `json:"entries"`
	Families       int    `json:"families"`
	TotalSouls     int    `json:"total_souls"`
	PermanentSouls int    `json:"permanent_souls"`
	LatrineCount   int    `json:"latrine_count"`
	Pillars        [5]int `json:"pillars"`
}

type RecapReport struct {
	DateFrom *string `json:"date_from,omitempty"`
	DateTo   *string `json:"date_to,omitempty"`

	TotalEntries   int `json:"total_entries"`
	TotalFamilies  int `json:"total_families"`
	TotalSouls     int `json:"total_souls"`
	PermanentSouls int `json:"permanent_souls"`
	LatrineCount   int `json:"latrine_count"`

	Pillars      []PillarStat `json:"pillars"`
	PerKelurahan []AreaRecap  `json:"per_kelurahan"`
}

var pillarLabels = [5]string{
	"Jamban Sehat",
	"CTPS",
	"Air Layak",
	"Sampah Aman",
	"Limbah Aman",
}

/* ==========================
   Kriteria capaian per pilar
========================== */

// Satu entri dihitung "tercapai" per pilar bila indikator kuncinya terpenuhi.
func pillarAchievements(f entryModel.SurveyFlags) [5]bool {
	var out [5]bool

	// Jamban sehat: leher angsa dengan septik aman atau belum pernah disedot
	out[0] = f.JambanLeherAngsa && (f.JambanSeptikAman || f.JambanSeptikTidakSedot)

	// CTPS: sarana lengkap dengan air mengalir dan sabun
	out[1] = f.CtpsSarana && f.CtpsAirMengalir && f.CtpsSabun

	// Air layak: salah satu sumber air layak dipakai
	out[2] = f.AirLayakPerpipaan || f.AirLayakKranUmum || f.AirLayakSgTerlindung ||
		f.AirLayakMataAir || f.AirLayakSgl || f.AirLayakSpl || f.AirLayakHujan

	// Sampah aman: tidak berserakan dan diolah dengan aman
	out[3] = f.SampahTidakSerak && f.SampahOlahAman

	// Limbah aman: tidak ada genangan dan saluran kedap
	out[4] = f.LimbahTidakGenang && f.LimbahSaluranKedap

	return out
}

// familyCount: entri tanpa baris anggota tetap dihitung satu keluarga.
func familyCount(e *entryModel.EntryModel) int {
	if n := len(e.FamilyMembers); n > 0 {
		return n
	}
	return 1
}

/* ==========================
   Service
========================== */

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// BuildRecap menghitung rekap STBM seluruh wilayah pada rentang tanggal
// (inklusif). from/to nil = tanpa batas.
func (s *ReportService) BuildRecap(ctx context.Context, from, to *time.Time) (*RecapReport, error) {
	q := s.DB.WithContext(ctx).
		Model(&entryModel.EntryModel{}).
		Preload("Kelurahan").
		Preload("FamilyMembers")
	if from != nil {
		q = q.Where("date_entry >= ?", from.Format("2006-01-02"))
	}
	if to != nil {
		// batas atas inklusif: bandingkan eksklusif terhadap hari berikutnya
		q = q.Where("date_entry < ?", to.AddDate(0, 0, 1).Format("2006-01-02"))
	}

	var entries []entryModel.EntryModel
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}

	report := &RecapReport{}
	if from != nil {
		v := from.Format("2006-01-02")
		report.DateFrom = &v
	}
	if to != nil {
		v := to.Format("2006-01-02")
		report.DateTo = &v
	}

	var pillarTotals [5]int
	perArea := map[string]*AreaRecap{}

	for i := range entries {
		e := &entries[i]

		report.TotalEntries++
		report.TotalFamilies += familyCount(e)
		report.TotalSouls += e.TotalSouls
		report.PermanentSouls += e.PermanentSouls
		report.LatrineCount += e.LatrineCount

		ach := pillarAchievements(e.SurveyFlags)

		key := e.KelurahanID.String()
		area, ok := perArea[key]
		if !ok {
			name := ""
			if e.Kelurahan != nil {
				name = e.Kelurahan.Name
			}
			area = &AreaRecap{KelurahanID: key, KelurahanName: name}
			perArea[key] = area
		}
		area.Entries++
		area.Families += familyCount(e)
		area.TotalSouls += e.TotalSouls
		area.PermanentSouls += e.PermanentSouls
		area.LatrineCount += e.LatrineCount

		for p := 0; p < 5; p++ {
			if ach[p] {
				pillarTotals[p]++
				area.Pillars[p]++
			}
		}
	}

	report.Pillars = make([]PillarStat, 5)
	for p := 0; p < 5; p++ {
		stat := PillarStat{Label: pillarLabels[p], Achieved: pillarTotals[p]}
		if report.TotalEntries > 0 {
			stat.Percent = float64(pillarTotals[p]) * 100 / float64(report.TotalEntries)
		}
		report.Pillars[p] = stat
	}

	report.PerKelurahan = make([]AreaRecap, 0, len(perArea))
	for _, area := range perArea {
		report.PerKelurahan = append(report.PerKelurahan, *area)
	}
	sort.Slice(report.PerKelurahan, func(i, j int) bool {
		return report.PerKelurahan[i].KelurahanName < report.PerKelurahan[j].KelurahanName
	})

	return report, nil
}
