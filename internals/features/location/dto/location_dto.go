// internals/features/location/dto/location_dto.go
package dto

import "github.com/google/uuid"

/* ===================== REQUESTS ===================== */

type CreateKelurahanRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateKelurahanRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateRWRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=20"`
	KelurahanID uuid.UUID `json:"kelurahan_id" validate:"required"`
}

type UpdateRWRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=20"`
	KelurahanID uuid.UUID `json:"kelurahan_id" validate:"required"`
}

type CreateRTRequest struct {
	Name string    `json:"name" validate:"required,min=1,max=20"`
	RWID uuid.UUID `json:"rw_id" validate:"required"`
}

type UpdateRTRequest struct {
	Name string    `json:"name" validate:"required,min=1,max=20"`
	RWID uuid.UUID `json:"rw_id" validate:"required"`
}
