// internals/syncqueue/queue_test.go
package syncqueue

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEnqueueAndPendingOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, payload := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		_, err := store.Enqueue(ctx, []byte(payload), "tablet-01")
		require.NoError(t, err)
	}

	items, err := store.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// paling lama dulu
	assert.Equal(t, `{"n":1}`, items[0].Payload)
	assert.Equal(t, `{"n":2}`, items[1].Payload)
	assert.Equal(t, `{"n":3}`, items[2].Payload)
	assert.Less(t, items[0].ID, items[1].ID)
	assert.Equal(t, "tablet-01", items[0].Device)
	assert.Equal(t, KindCreateEntry, items[0].Kind)
}

func TestRemoveOnlyDeletesTarget(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id1, err := store.Enqueue(ctx, []byte(`{"n":1}`), "")
	require.NoError(t, err)
	_, err = store.Enqueue(ctx, []byte(`{"n":2}`), "")
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, id1))

	items, err := store.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, `{"n":2}`, items[0].Payload)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestQueueSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "queue.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.Enqueue(ctx, []byte(`{"n":1}`), "tablet-01")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "antrean harus selamat dari restart proses")
}
