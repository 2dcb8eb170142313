// internals/helpers/natural_sort.go
package helper

import (
	"strconv"
	"strings"
)

// NaturalLess membandingkan nama wilayah secara numerik bila bisa,
// supaya urutan jadi 1, 2, 10 dan bukan 1, 10, 2. "05" dan "5" setara
// secara numerik; tie-break pakai perbandingan string biasa.
func NaturalLess(a, b string) bool {
	na, aerr := strconv.Atoi(strings.TrimSpace(a))
	nb, berr := strconv.Atoi(strings.TrimSpace(b))
	if aerr == nil && berr == nil {
		if na != nb {
			return na < nb
		}
		return a < b
	}
	if aerr == nil {
		return true // angka duluan sebelum nama non-angka
	}
	if berr == nil {
		return false
	}
	return strings.ToLower(a) < strings.ToLower(b)
}
