// internals/syncqueue/drainer.go
package syncqueue

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Submitter: sisi jaringan dari proses drain. Implementasi produksi
// memakai HTTP ke server (lihat remote.Client); test memakai fake.
type Submitter interface {
	Online(ctx context.Context) bool
	Submit(ctx context.Context, item Item) error
}

type DrainResult struct {
	Skipped   bool // drain lain sedang jalan, atau sedang offline
	Submitted int
	Failed    int
	Remaining int
}

// Drainer mengalirkan isi antrean ke server, berurutan dari yang paling
// lama. Item yang gagal dibiarkan di antrean untuk dicoba lagi pada drain
// berikutnya; tidak ada batas retry dan tidak ada dead-letter — antrean
// kecil dan operator yang memutuskan kapan data buntu dibersihkan.
type Drainer struct {
	store     *Store
	submitter Submitter
	log       *zap.Logger

	mu sync.Mutex
}

func NewDrainer(store *Store, submitter Submitter, log *zap.Logger) *Drainer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Drainer{store: store, submitter: submitter, log: log}
}

// Drain memproses antrean sekali jalan. Panggilan yang tumpang tindih
// dengan drain yang sedang berlangsung langsung kembali sebagai no-op.
func (d *Drainer) Drain(ctx context.Context) (DrainResult, error) {
	if !d.mu.TryLock() {
		d.log.Debug("drain dilewati, masih ada drain berjalan")
		return DrainResult{Skipped: true}, nil
	}
	defer d.mu.Unlock()

	if !d.submitter.Online(ctx) {
		d.log.Info("server tidak terjangkau, drain ditunda")
		return DrainResult{Skipped: true}, nil
	}

	items, err := d.store.Pending(ctx)
	if err != nil {
		return DrainResult{}, err
	}
	if len(items) == 0 {
		return DrainResult{}, nil
	}

	d.log.Info("mulai drain antrean", zap.Int("pending", len(items)))

	var res DrainResult
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}

		if err := d.submitter.Submit(ctx, item); err != nil {
			// Item gagal tetap di antrean; item berikutnya tetap dicoba
			res.Failed++
			d.log.Warn("kirim entri gagal, disimpan untuk retry",
				zap.Int64("queue_id", item.ID),
				zap.Error(err))
			continue
		}

		if err := d.store.Remove(ctx, item.ID); err != nil {
			// Gagal hapus berarti item bisa terkirim dobel pada drain
			// berikutnya; server menolak duplikat lewat cek nomor KK
			res.Failed++
			d.log.Error("entri terkirim tapi gagal dihapus dari antrean",
				zap.Int64("queue_id", item.ID),
				zap.Error(err))
			continue
		}
		res.Submitted++
		d.log.Info("entri terkirim", zap.Int64("queue_id", item.ID))
	}

	remaining, err := d.store.Count(ctx)
	if err == nil {
		res.Remaining = remaining
	}
	d.log.Info("drain selesai",
		zap.Int("submitted", res.Submitted),
		zap.Int("failed", res.Failed),
		zap.Int("remaining", res.Remaining))
	return res, nil
}
