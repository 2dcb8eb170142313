// internals/features/location/model/rt_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RTModel: rukun tetangga di bawah satu RW.
type RTModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	RWID      uuid.UUID `gorm:"type:uuid;not null;index;column:rw_id" json:"rw_id"`
	Name      string    `gorm:"type:varchar(20);not null;column:name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	RW *RWModel `gorm:"foreignKey:RWID;references:ID" json:"rw,omitempty"`
}

func (RTModel) TableName() string { return "rt" }

func (m *RTModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
