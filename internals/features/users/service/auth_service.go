// internals/features/users/service/auth_service.go
package service

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sigesit_backend/internals/configs"
	userDTO "sigesit_backend/internals/features/users/dto"
	userModel "sigesit_backend/internals/features/users/model"
	helpers "sigesit_backend/internals/helpers"
)

/* ==========================
   Const & Helpers
========================== */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_REFRESH_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET belum diset")
	}
	return secret, nil
}

func buildAccessClaims(u *userModel.UserProfileModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":      u.ID.String(),
		"username": u.Username,
		"role":     u.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(accessTTLDefault).Unix(),
	}
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

func issueTokenPair(u *userModel.UserProfileModel, now time.Time) (access string, refresh string, err error) {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return "", "", err
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return "", "", err
	}

	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(u, now)).
		SignedString([]byte(jwtSecret))
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat access token")
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(u.ID, now)).
		SignedString([]byte(refreshSecret))
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat refresh token")
	}
	return access, refresh, nil
}

func userResponse(u *userModel.UserProfileModel) fiber.Map {
	return fiber.Map{
		"id":           u.ID,
		"nik":          u.NIK,
		"name":         u.Name,
		"username":     u.Username,
		"phone":        u.Phone,
		"role":         u.Role,
		"is_active":    u.IsActive,
		"kelurahan_id": u.KelurahanID,
		"rw_id":        u.RWID,
		"rt_id":        u.RTID,
	}
}

/* ==========================
   LOGIN (username + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input userDTO.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := helpers.Validate(&input); err != nil {
		return helpers.JsonValidationError(c, helpers.ValidationMessages(err))
	}

	var user userModel.UserProfileModel
	if err := db.WithContext(c.Context()).
		Where("username = ?", strings.TrimSpace(input.Username)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Username atau password salah")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data akun")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Username atau password salah")
	}

	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}

	now := nowUTC()
	access, refresh, err := issueTokenPair(&user, now)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	return helpers.JsonOK(c, "Login berhasil", fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
		"user":          userResponse(&user),
	})
}

/* ==========================
   LOGOUT (blacklist bearer)
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" || token == authHeader {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Token tidak ditemukan")
	}

	// Masa simpan blacklist mengikuti exp token; fallback ke TTL default bila parse gagal.
	expiredAt := nowUTC().Add(accessTTLDefault)
	if secret, err := getJWTSecret(); err == nil {
		if tok, perr := jwt.Parse(token, func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		}); perr == nil && tok.Valid {
			if claims, ok := tok.Claims.(jwt.MapClaims); ok {
				if exp, ok := claims["exp"].(float64); ok {
					expiredAt = time.Unix(int64(exp), 0).UTC()
				}
			}
		}
	}

	entry := userModel.TokenBlacklist{Token: token, ExpiredAt: expiredAt}
	if err := db.WithContext(c.Context()).Create(&entry).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			return helpers.JsonOK(c, "Logout berhasil", nil)
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses logout")
	}

	return helpers.JsonOK(c, "Logout berhasil", nil)
}

/* ==========================
   REFRESH TOKEN
========================== */

func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil || strings.TrimSpace(input.RefreshToken) == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ada")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	tok, err := jwt.Parse(input.RefreshToken, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	var user userModel.UserProfileModel
	if err := db.WithContext(c.Context()).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Akun tidak ditemukan")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data akun")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}

	now := nowUTC()
	access, refresh, err := issueTokenPair(&user, now)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	return helpers.JsonOK(c, "Token diperbarui", fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

/* ==========================
   ME (profil akun login)
========================== */

func Me(db *gorm.DB, c *fiber.Ctx) error {
	rawID, _ := c.Locals("user_id").(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Sesi tidak valid")
	}

	var user userModel.UserProfileModel
	if err := db.WithContext(c.Context()).
		Preload("Kelurahan").Preload("RW").Preload("RT").
		First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Akun tidak ditemukan")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data akun")
	}

	return helpers.JsonOK(c, "OK", user)
}
