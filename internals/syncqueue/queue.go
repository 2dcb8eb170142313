// internals/syncqueue/queue.go
package syncqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// KindCreateEntry: satu-satunya jenis item saat ini.
const KindCreateEntry = "create_entry"

// Item: satu entri survei yang menunggu dikirim ke server.
// Payload adalah body JSON persis seperti yang akan di-POST.
type Item struct {
	ID         int64     `db:"id"`
	Kind       string    `db:"kind"`
	Payload    string    `db:"payload"`
	Device     string    `db:"device"`
	EnqueuedAt time.Time `db:"enqueued_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS entry_queue (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	kind        TEXT NOT NULL DEFAULT 'create_entry',
	payload     TEXT NOT NULL,
	device      TEXT NOT NULL DEFAULT '',
	enqueued_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Store: antrean tahan-mati di SQLite lokal. Entri bertahan melewati
// restart proses; baris hanya dihapus setelah server mengkonfirmasi.
type Store struct {
	db *sqlx.DB
}

func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("buka antrean %s: %w", path, err)
	}
	// SQLite: satu koneksi supaya write tidak saling kunci
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("siapkan skema antrean: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Enqueue menambah satu entri di ekor antrean.
func (s *Store) Enqueue(ctx context.Context, payload []byte, device string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO entry_queue (kind, payload, device, enqueued_at) VALUES (?, ?, ?, ?)`,
		KindCreateEntry, string(payload), device, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("enqueue: %w", err)
	}
	return res.LastInsertId()
}

// Pending mengembalikan seluruh isi antrean, paling lama dulu.
func (s *Store) Pending(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := s.db.SelectContext(ctx, &items,
		`SELECT id, kind, payload, device, enqueued_at FROM entry_queue ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("baca antrean: %w", err)
	}
	return items, nil
}

// Remove menghapus satu baris setelah terkirim sukses.
func (s *Store) Remove(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM entry_queue WHERE id = ?`, id); err != nil {
		return fmt.Errorf("hapus item %d: %w", id, err)
	}
	return nil
}

// Count: jumlah entri yang masih menunggu.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM entry_queue`); err != nil {
		return 0, fmt.Errorf("hitung antrean: %w", err)
	}
	return n, nil
}
