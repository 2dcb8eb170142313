// internals/features/profile/model/pkm_profile_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// PKMProfileModel: profil puskesmas. Satu baris saja (singleton id tetap).
type PKMProfileModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(150);not null" json:"name"`
	Address   string    `gorm:"column:address;type:text" json:"address"`
	Phone     string    `gorm:"column:phone;type:varchar(20)" json:"phone"`
	Email     string    `gorm:"column:email;type:varchar(100)" json:"email"`
	HeadName  string    `gorm:"column:head_name;type:varchar(100)" json:"head_name"`
	HeadNIP   string    `gorm:"column:head_nip;type:varchar(30)" json:"head_nip"`
	LogoURL   *string   `gorm:"column:logo_url;type:text" json:"logo_url"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PKMProfileModel) TableName() string {
	return "pkm_profile"
}

// SingletonID: id tetap untuk baris profil tunggal.
var SingletonID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
