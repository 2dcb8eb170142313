// internals/features/entries/controller/entry_controller_test.go
package controller

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	entryModel "sigesit_backend/internals/features/entries/model"
	locModel "sigesit_backend/internals/features/location/model"
)

type listEnvelope struct {
	Success    bool             `json:"success"`
	Data       []map[string]any `json:"data"`
	Pagination struct {
		Page       int   `json:"page"`
		PerPage    int   `json:"per_page"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
		HasNext    bool  `json:"has_next"`
		HasPrev    bool  `json:"has_prev"`
	} `json:"pagination"`
}

func setupListApp(t *testing.T, role string, userID uuid.UUID) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&locModel.KelurahanModel{},
		&locModel.RWModel{},
		&locModel.RTModel{},
		&entryModel.EntryModel{},
		&entryModel.FamilyMemberModel{},
	))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		c.Locals("role", role)
		return c.Next()
	})
	ctrl := NewEntryController(db)
	app.Get("/entries", ctrl.List)
	return app, db
}

func seedListEntries(t *testing.T, db *gorm.DB, userID uuid.UUID, n int) {
	t.Helper()
	kel := locModel.KelurahanModel{Name: "Padasuka"}
	require.NoError(t, db.Create(&kel).Error)
	rw := locModel.RWModel{KelurahanID: kel.ID, Name: "01"}
	require.NoError(t, db.Create(&rw).Error)
	rt := locModel.RTModel{RWID: rw.ID, Name: "01"}
	require.NoError(t, db.Create(&rt).Error)

	for i := 0; i < n; i++ {
		e := entryModel.EntryModel{
			UserID:        userID,
			DateEntry:     time.Date(2025, 3, 1+i, 0, 0, 0, 0, time.UTC),
			EntrySerialNo: i + 1,
			Address:       fmt.Sprintf("Jl. Test %d", i+1),
			KelurahanID:   kel.ID,
			RWID:          rw.ID,
			RTID:          rt.ID,
		}
		require.NoError(t, db.Create(&e).Error)
	}
}

func doList(t *testing.T, app *fiber.App, target string) listEnvelope {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env listEnvelope
	require.NoError(t, sonic.Unmarshal(raw, &env))
	return env
}

func TestListEntriesPaginated(t *testing.T) {
	userID := uuid.New()
	app, db := setupListApp(t, "admin", userID)
	seedListEntries(t, db, userID, 5)

	env := doList(t, app, "/entries?per_page=2&page=2")

	assert.True(t, env.Success)
	assert.Len(t, env.Data, 2)
	assert.Equal(t, 2, env.Pagination.Page)
	assert.Equal(t, 2, env.Pagination.PerPage)
	assert.Equal(t, int64(5), env.Pagination.Total)
	assert.Equal(t, 3, env.Pagination.TotalPages)
	assert.True(t, env.Pagination.HasNext)
	assert.True(t, env.Pagination.HasPrev)

	last := doList(t, app, "/entries?per_page=2&page=3")
	assert.Len(t, last.Data, 1)
	assert.False(t, last.Pagination.HasNext)
}

func TestListEntriesSortWhitelist(t *testing.T) {
	userID := uuid.New()
	app, db := setupListApp(t, "admin", userID)
	seedListEntries(t, db, userID, 3)

	env := doList(t, app, "/entries?sort_by=date_entry&sort_order=asc")
	require.Len(t, env.Data, 3)
	assert.Equal(t, float64(1), env.Data[0]["entry_serial_no"])
	assert.Equal(t, float64(3), env.Data[2]["entry_serial_no"])

	// kunci di luar whitelist jatuh ke default, bukan error
	fallback := doList(t, app, "/entries?sort_by=password")
	assert.Len(t, fallback.Data, 3)
}

func TestListEntriesScopedToKader(t *testing.T) {
	kaderID := uuid.New()
	app, db := setupListApp(t, "kader", kaderID)
	seedListEntries(t, db, kaderID, 2)
	seedOther := entryModel.EntryModel{
		UserID:      uuid.New(),
		DateEntry:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Address:     "Jl. Lain",
		KelurahanID: uuid.New(),
		RWID:        uuid.New(),
		RTID:        uuid.New(),
	}
	require.NoError(t, db.Create(&seedOther).Error)

	env := doList(t, app, "/entries")
	assert.Len(t, env.Data, 2)
	assert.Equal(t, int64(2), env.Pagination.Total)
}
