// internals/features/location/model/rw_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RWModel: rukun warga di bawah satu kelurahan.
// Keunikan (kelurahan_id, name) tidak dipaksa di DB — dijaga best-effort
// oleh resolver (lookup-sebelum-create), lihat service.Resolver.
type RWModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	KelurahanID uuid.UUID `gorm:"type:uuid;not null;index;column:kelurahan_id" json:"kelurahan_id"`
	Name        string    `gorm:"type:varchar(20);not null;column:name" json:"name"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Kelurahan *KelurahanModel `gorm:"foreignKey:KelurahanID;references:ID" json:"kelurahan,omitempty"`
}

func (RWModel) TableName() string { return "rw" }

func (m *RWModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
