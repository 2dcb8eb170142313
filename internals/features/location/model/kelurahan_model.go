// internals/features/location/model/kelurahan_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KelurahanModel: level teratas hierarki wilayah (Kelurahan → RW → RT).
type KelurahanModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;column:name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (KelurahanModel) TableName() string { return "kelurahan" }

func (m *KelurahanModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
