package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ExecutionMode menentukan backend data aplikasi:
// "live" → PostgreSQL (Supabase), "demo" → SQLite in-memory + data contoh.
// Di-set sekali saat start, tidak dibaca ulang dari environment di tengah jalan.
type ExecutionMode string

const (
	ModeLive ExecutionMode = "live"
	ModeDemo ExecutionMode = "demo"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	Mode             ExecutionMode
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	Mode = ResolveMode(GetEnv("APP_MODE"))

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	if JWTRefreshSecret == "" {
		log.Println("❌ JWT_REFRESH_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_REFRESH_SECRET berhasil dimuat.")
	}

	log.Printf("✅ Mode aplikasi: %s", Mode)
}

// ResolveMode menormalkan nilai APP_MODE; selain "demo" dianggap live.
func ResolveMode(raw string) ExecutionMode {
	if strings.EqualFold(strings.TrimSpace(raw), string(ModeDemo)) {
		return ModeDemo
	}
	return ModeLive
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
