// internals/features/entries/model/entry_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	locModel "sigesit_backend/internals/features/location/model"
)

/*
SurveyFlags: ~50 jawaban ya/tidak kuesioner STBM, dikelompokkan per pilar.
Kelompok "pilihan eksklusif" (pembuangan akhir tinja, kategori sumber air)
dijaga maksimal satu true oleh form entri, bukan oleh DB.
*/
type SurveyFlags struct {
	// Pilar 1 — Stop BABS / jamban
	JambanBabJamban        bool `gorm:"column:jamban_bab_jamban" json:"jamban_bab_jamban"`
	JambanMilikSendiri     bool `gorm:"column:jamban_milik_sendiri" json:"jamban_milik_sendiri"`
	JambanSeptikAman       bool `gorm:"column:jamban_septik_aman" json:"jamban_septik_aman"`
	JambanSeptikTidakSedot bool `gorm:"column:jamban_septik_tidak_sedot" json:"jamban_septik_tidak_sedot"`
	JambanCubluk           bool `gorm:"column:jamban_cubluk" json:"jamban_cubluk"`
	JambanDibuangDrainase  bool `gorm:"column:jamban_dibuang_drainase" json:"jamban_dibuang_drainase"`
	JambanLeherAngsa       bool `gorm:"column:jamban_leher_angsa" json:"jamban_leher_angsa"`

	// Pilar 2 — CTPS (cuci tangan pakai sabun)
	CtpsSarana           bool `gorm:"column:ctps_sarana" json:"ctps_sarana"`
	CtpsAirMengalir      bool `gorm:"column:ctps_air_mengalir" json:"ctps_air_mengalir"`
	CtpsSabun            bool `gorm:"column:ctps_sabun" json:"ctps_sabun"`
	CtpsMampuPraktek     bool `gorm:"column:ctps_mampu_praktek" json:"ctps_mampu_praktek"`
	CtpsTahuWaktuKritis  bool `gorm:"column:ctps_tahu_waktu_kritis" json:"ctps_tahu_waktu_kritis"`
	CtpsSebelumMakan     bool `gorm:"column:ctps_sebelum_makan" json:"ctps_sebelum_makan"`
	CtpsSebelumOlahMakan bool `gorm:"column:ctps_sebelum_olah_makan" json:"ctps_sebelum_olah_makan"`
	CtpsSebelumSusui     bool `gorm:"column:ctps_sebelum_susui" json:"ctps_sebelum_susui"`
	CtpsSetelahBab       bool `gorm:"column:ctps_setelah_bab" json:"ctps_setelah_bab"`

	// Pilar 3 — air minum & pangan
	AirLayakPerpipaan    bool `gorm:"column:air_layak_perpipaan" json:"air_layak_perpipaan"`
	AirLayakKranUmum     bool `gorm:"column:air_layak_kran_umum" json:"air_layak_kran_umum"`
	AirLayakSgTerlindung bool `gorm:"column:air_layak_sg_terlindung" json:"air_layak_sg_terlindung"`
	AirLayakSgl          bool `gorm:"column:air_layak_sgl" json:"air_layak_sgl"`
	AirLayakSpl          bool `gorm:"column:air_layak_spl" json:"air_layak_spl"`
	AirLayakMataAir      bool `gorm:"column:air_layak_mata_air" json:"air_layak_mata_air"`
	AirLayakHujan        bool `gorm:"column:air_layak_hujan" json:"air_layak_hujan"`

	AirTidakLayakSungai  bool `gorm:"column:air_tidak_layak_sungai" json:"air_tidak_layak_sungai"`
	AirTidakLayakDanau   bool `gorm:"column:air_tidak_layak_danau" json:"air_tidak_layak_danau"`
	AirTidakLayakWaduk   bool `gorm:"column:air_tidak_layak_waduk" json:"air_tidak_layak_waduk"`
	AirTidakLayakKolam   bool `gorm:"column:air_tidak_layak_kolam" json:"air_tidak_layak_kolam"`
	AirTidakLayakIrigasi bool `gorm:"column:air_tidak_layak_irigasi" json:"air_tidak_layak_irigasi"`

	OlahAirProses      bool `gorm:"column:olah_air_proses" json:"olah_air_proses"`
	OlahAirKeruh       bool `gorm:"column:olah_air_keruh" json:"olah_air_keruh"`
	OlahAirSimpanTutup bool `gorm:"column:olah_air_simpan_tutup" json:"olah_air_simpan_tutup"`

	PanganTutup   bool `gorm:"column:pangan_tutup" json:"pangan_tutup"`
	PanganPisahB3 bool `gorm:"column:pangan_pisah_b3" json:"pangan_pisah_b3"`
	Pangan5Kunci  bool `gorm:"column:pangan_5_kunci" json:"pangan_5_kunci"`

	// Pilar 4 — sampah
	SampahTidakSerak bool `gorm:"column:sampah_tidak_serak" json:"sampah_tidak_serak"`
	SampahTutupKuat  bool `gorm:"column:sampah_tutup_kuat" json:"sampah_tutup_kuat"`
	SampahOlahAman   bool `gorm:"column:sampah_olah_aman" json:"sampah_olah_aman"`
	SampahPilah      bool `gorm:"column:sampah_pilah" json:"sampah_pilah"`

	// Pilar 5 — limbah cair
	LimbahTidakGenang  bool `gorm:"column:limbah_tidak_genang" json:"limbah_tidak_genang"`
	LimbahSaluranKedap bool `gorm:"column:limbah_saluran_kedap" json:"limbah_saluran_kedap"`
	LimbahResapanIpal  bool `gorm:"column:limbah_resapan_ipal" json:"limbah_resapan_ipal"`

	// PKURT — kualitas udara dalam rumah
	PkurtJendelaKamar    bool `gorm:"column:pkurt_jendela_kamar" json:"pkurt_jendela_kamar"`
	PkurtJendelaKeluarga bool `gorm:"column:pkurt_jendela_keluarga" json:"pkurt_jendela_keluarga"`
	PkurtVentilasi       bool `gorm:"column:pkurt_ventilasi" json:"pkurt_ventilasi"`
	PkurtLubangAsap      bool `gorm:"column:pkurt_lubang_asap" json:"pkurt_lubang_asap"`
	PkurtCahayaAlami     bool `gorm:"column:pkurt_cahaya_alami" json:"pkurt_cahaya_alami"`
	PkurtTidakMerokok    bool `gorm:"column:pkurt_tidak_merokok" json:"pkurt_tidak_merokok"`
}

// EntryModel: satu kunjungan survei ke satu rumah.
type EntryModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	DateEntry     time.Time `gorm:"type:date;not null;column:date_entry" json:"date_entry"`
	EntrySerialNo int       `gorm:"column:entry_serial_no" json:"entry_serial_no"`
	Address       string    `gorm:"type:text;column:address" json:"address"`

	KelurahanID uuid.UUID `gorm:"type:uuid;not null;index;column:kelurahan_id" json:"kelurahan_id"`
	RWID        uuid.UUID `gorm:"type:uuid;not null;index;column:rw_id" json:"rw_id"`
	RTID        uuid.UUID `gorm:"type:uuid;not null;index;column:rt_id" json:"rt_id"`

	// Agregat turunan dari family_members
	TotalSouls     int `gorm:"column:total_souls" json:"total_souls"`
	PermanentSouls int `gorm:"column:permanent_souls" json:"permanent_souls"`
	LatrineCount   int `gorm:"column:latrine_count" json:"latrine_count"`

	SurveyFlags `gorm:"embedded"`

	// Jejak sinkronisasi offline (diisi server saat entri datang dari antrean agen)
	SyncMeta datatypes.JSON `gorm:"column:entry_sync_meta" json:"entry_sync_meta,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`

	Kelurahan     *locModel.KelurahanModel `gorm:"foreignKey:KelurahanID;references:ID" json:"kelurahan,omitempty"`
	RW            *locModel.RWModel        `gorm:"foreignKey:RWID;references:ID" json:"rw,omitempty"`
	RT            *locModel.RTModel        `gorm:"foreignKey:RTID;references:ID" json:"rt,omitempty"`
	FamilyMembers []FamilyMemberModel      `gorm:"foreignKey:EntryID;references:ID" json:"family_members,omitempty"`
}

func (EntryModel) TableName() string { return "entries" }

func (m *EntryModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
