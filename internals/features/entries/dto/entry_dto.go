// internals/features/entries/dto/entry_dto.go
package dto

import (
	"time"

	entryModel "sigesit_backend/internals/features/entries/model"
)

/* ===================== REQUESTS ===================== */

// FamilyMemberInput: satu KK di form entri. Field numerik yang kosong
// dianggap 0. NoKKCard=true berarti rumah tidak punya kartu → nomor KK
// disintesis server (16 digit) dan ditandai is_auto_generated.
type FamilyMemberInput struct {
	KKNumber       string `json:"kk_number" validate:"omitempty,max=16,numeric"`
	HeadOfFamily   string `json:"head_of_family" validate:"required,max=100"`
	TotalSouls     int    `json:"total_souls" validate:"min=0"`
	PermanentSouls int    `json:"permanent_souls" validate:"min=0"`
	LatrineCount   int    `json:"latrine_count" validate:"min=0"`
	NoKKCard       bool   `json:"no_kk_card"`
}

// SyncMetaInput: jejak asal entri yang datang dari antrean offline agen.
type SyncMetaInput struct {
	EnqueuedAt  time.Time `json:"enqueued_at"`
	Device      string    `json:"device,omitempty"`
	QueueItemID int64     `json:"queue_item_id,omitempty"`
}

// CreateEntryRequest memuat persis kolom yang boleh ditulis — field join
// (nama kelurahan/rw/rt, nama kader) tidak pernah ada di sini sehingga
// otomatis "ter-strip" di perbatasan DTO.
//
// RWID dan RTID berupa string: boleh id kanonik, boleh label hasil ketikan
// ("5", "05"); resolver wilayah yang menentukan id finalnya.
type CreateEntryRequest struct {
	DateEntry     string `json:"date_entry" validate:"required,datetime=2006-01-02"`
	EntrySerialNo int    `json:"entry_serial_no" validate:"min=0"`
	Address       string `json:"address" validate:"required"`

	KelurahanID string `json:"kelurahan_id" validate:"required,uuid"`
	RWID        string `json:"rw_id" validate:"required"`
	RTID        string `json:"rt_id" validate:"required"`

	entryModel.SurveyFlags

	FamilyMembers []FamilyMemberInput `json:"family_members" validate:"required,min=1,max=20,dive"`

	SyncMeta *SyncMetaInput `json:"sync_meta,omitempty"`
}

// UpdateEntryRequest: bentuknya sama dengan create; anggota keluarga
// diganti borongan (bukan merge).
type UpdateEntryRequest = CreateEntryRequest

/* ===================== QUERIES ===================== */

type ListEntriesQuery struct {
	DateFrom string `query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `query:"date_to" validate:"omitempty,datetime=2006-01-02"`
}
