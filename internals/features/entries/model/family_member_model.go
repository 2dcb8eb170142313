// internals/features/entries/model/family_member_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FamilyMemberModel: satu kartu keluarga (KK) di dalam satu entri rumah.
// Dimiliki penuh oleh entri induknya: dibuat/dihapus borongan bersama entri,
// tidak punya identitas sendiri di luar itu.
type FamilyMemberModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	EntryID         uuid.UUID `gorm:"type:uuid;not null;index;column:entry_id" json:"entry_id"`
	KKNumber        string    `gorm:"type:varchar(16);not null;index;column:kk_number" json:"kk_number"`
	HeadOfFamily    string    `gorm:"type:varchar(100);column:head_of_family" json:"head_of_family"`
	TotalSouls      int       `gorm:"column:total_souls" json:"total_souls"`
	PermanentSouls  int       `gorm:"column:permanent_souls" json:"permanent_souls"`
	LatrineCount    int       `gorm:"column:latrine_count" json:"latrine_count"`
	IsAutoGenerated bool      `gorm:"column:is_auto_generated;default:false" json:"is_auto_generated"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (FamilyMemberModel) TableName() string { return "family_members" }

func (m *FamilyMemberModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
