// internals/databases/migrate.go
package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sigesit_backend/internals/configs"
	entryModel "sigesit_backend/internals/features/entries/model"
	locModel "sigesit_backend/internals/features/location/model"
	profileModel "sigesit_backend/internals/features/profile/model"
	userModel "sigesit_backend/internals/features/users/model"
)

// Migrate menjalankan AutoMigrate seluruh tabel. Di mode demo sekalian
// seed data contoh supaya aplikasi langsung bisa dicoba.
func Migrate() {
	log.Println("📜 Menjalankan migrasi skema...")

	if err := DB.AutoMigrate(
		&locModel.KelurahanModel{},
		&locModel.RWModel{},
		&locModel.RTModel{},
		&userModel.UserProfileModel{},
		&userModel.TokenBlacklist{},
		&entryModel.EntryModel{},
		&entryModel.FamilyMemberModel{},
		&profileModel.PKMProfileModel{},
	); err != nil {
		log.Fatalf("❌ Migrasi gagal: %v", err)
	}

	log.Println("✅ Migrasi selesai.")

	if configs.Mode == configs.ModeDemo {
		seedDemo(DB)
	}
}

// seedDemo: wilayah + profil PKM + akun admin demo (admin / admin123).
func seedDemo(db *gorm.DB) {
	log.Println("🌱 Seed data demo...")

	var count int64
	db.Model(&userModel.UserProfileModel{}).Count(&count)
	if count > 0 {
		log.Println("ℹ️ Data demo sudah ada, lewati seed.")
		return
	}

	kel := locModel.KelurahanModel{Name: "Padasuka"}
	if err := db.Create(&kel).Error; err != nil {
		log.Printf("seed kelurahan err: %v", err)
		return
	}
	for _, rwName := range []string{"01", "02", "03"} {
		rw := locModel.RWModel{KelurahanID: kel.ID, Name: rwName}
		if err := db.Create(&rw).Error; err != nil {
			log.Printf("seed rw err: %v", err)
			continue
		}
		for _, rtName := range []string{"01", "02"} {
			rt := locModel.RTModel{RWID: rw.ID, Name: rtName}
			if err := db.Create(&rt).Error; err != nil {
				log.Printf("seed rt err: %v", err)
			}
		}
	}

	profile := profileModel.PKMProfileModel{
		ID:      profileModel.SingletonID,
		Name:    "PKM PADASUKA (Demo)",
		Address: "Jl. Padasuka, Bandung",
	}
	if err := db.Create(&profile).Error; err != nil {
		log.Printf("seed profil err: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed admin hash err: %v", err)
		return
	}
	display := "admin123"
	admin := userModel.UserProfileModel{
		NIK:             "0000000000000000",
		Name:            "Admin Demo",
		Username:        "admin",
		Password:        string(hash),
		PasswordDisplay: &display,
		Role:            "admin",
		IsActive:        true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("seed admin err: %v", err)
		return
	}

	log.Println("✅ Seed demo selesai (login: admin / admin123).")
}
