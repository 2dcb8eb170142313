// internals/syncqueue/drainer_test.go
package syncqueue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSubmitter merekam urutan kirim dan bisa diset gagal per-payload.
type fakeSubmitter struct {
	mu        sync.Mutex
	online    bool
	failOn    map[string]bool
	submitted []string
	entered   chan struct{} // diberi sinyal begitu Submit mulai jalan
	block     chan struct{} // kalau diisi, Submit menunggu sampai channel ditutup
}

func (f *fakeSubmitter) Online(ctx context.Context) bool { return f.online }

func (f *fakeSubmitter) Submit(ctx context.Context, item Item) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[item.Payload] {
		return errors.New("server menolak")
	}
	f.submitted = append(f.submitted, item.Payload)
	return nil
}

func TestDrainSubmitsAllInOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, p := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		_, err := store.Enqueue(ctx, []byte(p), "")
		require.NoError(t, err)
	}

	sub := &fakeSubmitter{online: true, failOn: map[string]bool{}}
	d := NewDrainer(store, sub, zap.NewNop())

	res, err := d.Drain(ctx)
	require.NoError(t, err)

	assert.False(t, res.Skipped)
	assert.Equal(t, 3, res.Submitted)
	assert.Zero(t, res.Failed)
	assert.Zero(t, res.Remaining)
	assert.Equal(t, []string{`{"n":1}`, `{"n":2}`, `{"n":3}`}, sub.submitted)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "antrean harus kosong setelah semua terkirim")
}

func TestDrainKeepsFailedItemAndContinues(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, p := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		_, err := store.Enqueue(ctx, []byte(p), "")
		require.NoError(t, err)
	}

	sub := &fakeSubmitter{online: true, failOn: map[string]bool{`{"n":2}`: true}}
	d := NewDrainer(store, sub, zap.NewNop())

	res, err := d.Drain(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Submitted)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Remaining)
	assert.Equal(t, []string{`{"n":1}`, `{"n":3}`}, sub.submitted,
		"item setelah yang gagal harus tetap dicoba")

	items, err := store.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, `{"n":2}`, items[0].Payload, "yang gagal tetap di antrean")

	// Drain berikutnya memungut sisa begitu server pulih
	sub.failOn = map[string]bool{}
	res, err = d.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Submitted)
	assert.Zero(t, res.Remaining)
}

func TestDrainOfflineIsNoop(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Enqueue(ctx, []byte(`{"n":1}`), "")
	require.NoError(t, err)

	sub := &fakeSubmitter{online: false, failOn: map[string]bool{}}
	d := NewDrainer(store, sub, zap.NewNop())

	res, err := d.Drain(ctx)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Empty(t, sub.submitted)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDrainSingleFlight(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Enqueue(ctx, []byte(`{"n":1}`), "")
	require.NoError(t, err)

	block := make(chan struct{})
	entered := make(chan struct{})
	sub := &fakeSubmitter{online: true, failOn: map[string]bool{}, entered: entered, block: block}
	d := NewDrainer(store, sub, zap.NewNop())

	done := make(chan DrainResult, 1)
	go func() {
		res, _ := d.Drain(ctx)
		done <- res
	}()

	// Tunggu drain pertama masuk ke Submit; di titik itu lock pasti dipegang
	<-entered

	// Drain kedua saat yang pertama masih jalan → no-op
	res2, err := d.Drain(ctx)
	require.NoError(t, err)
	assert.True(t, res2.Skipped)

	close(block)
	res1 := <-done
	assert.Equal(t, 1, res1.Submitted)
}
