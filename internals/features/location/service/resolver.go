// internals/features/location/service/resolver.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==========================
   Level & error taxonomy
========================== */

// Level menunjuk tabel wilayah yang sedang di-resolve.
type Level string

const (
	LevelRW Level = "rw"
	LevelRT Level = "rt"
)

func (l Level) table() string {
	return string(l)
}

func (l Level) parentColumn() string {
	if l == LevelRW {
		return "kelurahan_id"
	}
	return "rw_id"
}

// ErrValidation: input nama wilayah kosong / tidak masuk akal, bisa
// diperbaiki oleh pemakai. ErrResolution: nama tidak bisa ditemukan
// maupun dibuat setelah retry, perlu pembersihan data manual.
var (
	ErrValidation = errors.New("nama wilayah tidak valid")
	ErrResolution = errors.New("gagal memproses data wilayah")
)

// ValidationError membungkus ErrValidation dengan nilai yang ditolak.
type ValidationError struct {
	Level Level
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Nama %s tidak valid (%s)", strings.ToUpper(string(e.Level)), e.Value)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ResolutionError membawa level + nilai yang dicoba, untuk pesan ke operator.
type ResolutionError struct {
	Level Level
	Value string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("Gagal memproses data %s: %s. Silakan periksa kembali data wilayah.",
		strings.ToUpper(string(e.Level)), e.Value)
}

func (e *ResolutionError) Unwrap() error { return ErrResolution }

/* ==========================
   Resolver
========================== */

var uuidShape = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// Resolver memetakan label RW/RT hasil input manusia (mis. "5" atau "05")
// ke id kanonik di tabel wilayah, membuat barisnya kalau belum ada.
//
// Bukan upsert transaksional: dua pemanggil serentak untuk nama baru yang
// sama bisa sama-sama lolos lookup lalu sama-sama insert; yang kalah
// direkonsiliasi dengan membaca ulang setelah insert gagal. Konvergen ke
// satu id begitu salah satu create mendarat.
type Resolver struct {
	DB *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{DB: db}
}

type idRow struct {
	ID uuid.UUID `gorm:"column:id"`
}

// Resolve mengembalikan id kanonik untuk nameOrID di bawah parentID.
// Urutan: passthrough UUID → lookup persis → lookup padded ("5"→"05") →
// create → (kalau create gagal) lookup ulang persis & padded → error.
func (r *Resolver) Resolve(ctx context.Context, level Level, parentID uuid.UUID, nameOrID string) (uuid.UUID, error) {
	input := strings.TrimSpace(nameOrID)

	// 1) Sudah berbentuk id kanonik → dipercaya, tanpa akses store.
	if uuidShape.MatchString(strings.ToLower(input)) {
		return uuid.Parse(input)
	}

	// 2) Validasi nama
	if input == "" || input == "0" || input == "NaN" || strings.EqualFold(input, "null") {
		return uuid.Nil, &ValidationError{Level: level, Value: input}
	}

	// 3) Lookup persis
	if id, ok, err := r.lookup(ctx, level, parentID, input); err != nil {
		return uuid.Nil, err
	} else if ok {
		return id, nil
	}

	// 4) Lookup dengan leading zero, hanya kalau padding mengubah string
	padded := pad2(input)
	if padded != input {
		if id, ok, err := r.lookup(ctx, level, parentID, padded); err != nil {
			return uuid.Nil, err
		} else if ok {
			return id, nil
		}
	}

	// 5) Belum ada → create
	newID := uuid.New()
	err := r.DB.WithContext(ctx).Table(level.table()).Create(map[string]any{
		"id":                 newID,
		level.parentColumn(): parentID,
		"name":               input,
	}).Error
	if err == nil {
		return newID, nil
	}
	log.Printf("[WARN] resolver: insert %s %q gagal, coba lookup ulang: %v", level, input, err)

	// 6) Insert gagal (kemungkinan balapan dengan pemanggil lain yang
	//    membuat nama sama) → baca ulang sekali lagi sebelum menyerah.
	if id, ok, err := r.lookup(ctx, level, parentID, input); err != nil {
		return uuid.Nil, err
	} else if ok {
		return id, nil
	}
	if padded != input {
		if id, ok, err := r.lookup(ctx, level, parentID, padded); err != nil {
			return uuid.Nil, err
		} else if ok {
			return id, nil
		}
	}

	return uuid.Nil, &ResolutionError{Level: level, Value: input}
}

func (r *Resolver) lookup(ctx context.Context, level Level, parentID uuid.UUID, name string) (uuid.UUID, bool, error) {
	var row idRow
	err := r.DB.WithContext(ctx).
		Table(level.table()).
		Select("id").
		Where(level.parentColumn()+" = ? AND name = ?", parentID, name).
		Limit(1).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return row.ID, true, nil
}

func pad2(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}
