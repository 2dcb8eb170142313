// internals/features/users/model/user_profile_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	locModel "sigesit_backend/internals/features/location/model"
)

// UserProfileModel: akun aplikasi (admin puskesmas / kader lapangan).
// Kader diikat ke wilayah binaannya lewat kelurahan/rw/rt opsional.
// PasswordDisplay menyimpan password awal yang bisa dibacakan admin ke
// kader saat serah terima akun.
type UserProfileModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	NIK      string    `gorm:"type:varchar(32);unique;not null;column:nik" json:"nik"`
	Name     string    `gorm:"type:varchar(100);not null;column:name" json:"name"`
	Phone    string    `gorm:"type:varchar(20);column:phone" json:"phone"`
	Username string    `gorm:"type:varchar(50);unique;not null;column:username" json:"username"`

	Password        string  `gorm:"type:text;not null;column:password" json:"-"`
	PasswordDisplay *string `gorm:"type:varchar(100);column:password_display" json:"password_display,omitempty"`

	KelurahanID *uuid.UUID `gorm:"type:uuid;index;column:kelurahan_id" json:"kelurahan_id,omitempty"`
	RWID        *uuid.UUID `gorm:"type:uuid;index;column:rw_id" json:"rw_id,omitempty"`
	RTID        *uuid.UUID `gorm:"type:uuid;index;column:rt_id" json:"rt_id,omitempty"`

	Role     string `gorm:"type:varchar(20);not null;default:'kader';column:role" json:"role"`
	IsActive bool   `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`

	Kelurahan *locModel.KelurahanModel `gorm:"foreignKey:KelurahanID;references:ID" json:"kelurahan,omitempty"`
	RW        *locModel.RWModel        `gorm:"foreignKey:RWID;references:ID" json:"rw,omitempty"`
	RT        *locModel.RTModel        `gorm:"foreignKey:RTID;references:ID" json:"rt,omitempty"`
}

func (UserProfileModel) TableName() string { return "user_profiles" }

func (m *UserProfileModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
