// internals/helpers/validator.go
package helper

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate menjalankan validator global terhadap struct request.
func Validate(s any) error {
	return validate.Struct(s)
}

// ValidationMessages mengubah validator.ValidationErrors jadi map field → pesan.
func ValidationMessages(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fe.Field() + " wajib diisi."
		case "min":
			msg = fe.Field() + " minimal " + fe.Param() + " karakter."
		case "max":
			msg = fe.Field() + " maksimal " + fe.Param() + " karakter."
		case "len":
			msg = fe.Field() + " harus " + fe.Param() + " karakter."
		case "oneof":
			msg = fe.Field() + " harus salah satu dari: " + fe.Param() + "."
		default:
			msg = fe.Field() + " tidak valid."
		}
		out[fe.Field()] = append(out[fe.Field()], msg)
	}
	return out
}
