// internals/features/profile/dto/pkm_profile_dto.go
package dto

type UpsertPKMProfileRequest struct {
	Name     string `json:"name" form:"name" validate:"required,min=3,max=150"`
	Address  string `json:"address" form:"address" validate:"omitempty,max=500"`
	Phone    string `json:"phone" form:"phone" validate:"omitempty,max=20"`
	Email    string `json:"email" form:"email" validate:"omitempty,email,max=100"`
	HeadName string `json:"head_name" form:"head_name" validate:"omitempty,max=100"`
	HeadNIP  string `json:"head_nip" form:"head_nip" validate:"omitempty,max=30"`
}
