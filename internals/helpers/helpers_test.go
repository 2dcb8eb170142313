// internals/helpers/helpers_test.go
package helper

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNaturalLessNumericOrder(t *testing.T) {
	names := []string{"10", "2", "1", "05", "3"}
	sort.Slice(names, func(i, j int) bool { return NaturalLess(names[i], names[j]) })
	assert.Equal(t, []string{"1", "2", "3", "05", "10"}, names)
}

func TestNaturalLessMixed(t *testing.T) {
	assert.True(t, NaturalLess("2", "10"), "numerik, bukan leksikal")
	assert.True(t, NaturalLess("7", "Melati"), "angka duluan sebelum nama")
	assert.False(t, NaturalLess("Melati", "7"))
	assert.True(t, NaturalLess("anggrek", "Melati"), "nama dibanding tanpa peduli kapital")
}

func TestSafeOrderClauseWhitelist(t *testing.T) {
	allowed := map[string]string{
		"created_at": "created_at",
		"name":       "name",
	}

	p := Params{SortBy: "name", SortOrder: "asc"}
	clause, err := p.SafeOrderClause(allowed, "created_at")
	require.NoError(t, err)
	assert.Equal(t, `ORDER BY "name" ASC`, clause)

	// kunci di luar whitelist jatuh ke default, bukan diteruskan mentah
	p = Params{SortBy: "password; DROP TABLE entries", SortOrder: "desc"}
	clause, err = p.SafeOrderClause(allowed, "created_at")
	require.NoError(t, err)
	assert.Equal(t, `ORDER BY "created_at" DESC`, clause)
}

func TestSafeOrderClauseNoDefault(t *testing.T) {
	p := Params{SortBy: "bogus"}
	_, err := p.SafeOrderClause(map[string]string{"a": "a"}, "missing")
	require.Error(t, err)
}

func TestParamsOffset(t *testing.T) {
	p := Params{Page: 3, PerPage: 25}
	assert.Equal(t, 25, p.Limit())
	assert.Equal(t, 50, p.Offset())
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(101, Params{Page: 2, PerPage: 25})
	assert.Equal(t, 5, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	empty := BuildMeta(0, Params{Page: 1, PerPage: 25})
	assert.Zero(t, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestValidationMessagesIndonesian(t *testing.T) {
	type form struct {
		Name string `validate:"required"`
	}
	err := Validate(&form{})
	require.Error(t, err)

	msgs := ValidationMessages(err)
	require.Contains(t, msgs, "Name")
	assert.Contains(t, msgs["Name"][0], "wajib diisi")
}
