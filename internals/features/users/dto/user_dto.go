// internals/features/users/dto/user_dto.go
package dto

import (
	"github.com/google/uuid"

	userModel "sigesit_backend/internals/features/users/model"
)

/* ===================== AUTH ===================== */

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

/* ===================== ADMIN: KELOLA AKUN ===================== */

type CreateUserRequest struct {
	NIK      string `json:"nik" validate:"required,min=3,max=32"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=100"`

	KelurahanID *uuid.UUID `json:"kelurahan_id" validate:"omitempty"`
	RWID        *uuid.UUID `json:"rw_id" validate:"omitempty"`
	RTID        *uuid.UUID `json:"rt_id" validate:"omitempty"`

	Role string `json:"role" validate:"omitempty,oneof=admin kader super_admin"`
}

func (r *CreateUserRequest) ToModel(passwordHash string) *userModel.UserProfileModel {
	role := r.Role
	if role == "" {
		role = "kader"
	}
	display := r.Password
	return &userModel.UserProfileModel{
		NIK:             r.NIK,
		Name:            r.Name,
		Phone:           r.Phone,
		Username:        r.Username,
		Password:        passwordHash,
		PasswordDisplay: &display,
		KelurahanID:     r.KelurahanID,
		RWID:            r.RWID,
		RTID:            r.RTID,
		Role:            role,
		IsActive:        true,
	}
}

type UpdateUserStatusRequest struct {
	IsActive bool `json:"is_active"`
}

// AdminUpdateUserRequest: payload RPC admin — reset password atau hapus akun.
type AdminUpdateUserRequest struct {
	UserID   string `json:"user_id" validate:"required,uuid"`
	Password string `json:"password" validate:"omitempty,min=6,max=100"`
	Action   string `json:"action" validate:"omitempty,oneof=update delete"`
}
