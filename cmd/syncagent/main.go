// cmd/syncagent/main.go
//
// Agen sinkronisasi offline: menjaga antrean entri survei di SQLite lokal
// dan mengalirkannya ke server begitu koneksi tersedia.
//
//	syncagent enqueue <entry.json>   — antre satu entri dari file JSON
//	syncagent drain                  — proses antrean sekali lalu keluar
//	syncagent run                    — jalan terus, drain saat online
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sigesit_backend/internals/syncqueue"
	"sigesit_backend/internals/syncqueue/remote"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "pemakaian: syncagent <enqueue|drain|run> [args]")
		os.Exit(2)
	}

	queuePath := getenv("SYNC_QUEUE_PATH", "sigesit-queue.db")
	store, storeErr := syncqueue.Open(queuePath)
	if storeErr == nil {
		defer store.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch os.Args[1] {
	case "enqueue":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "pemakaian: syncagent enqueue <entry.json>")
			os.Exit(2)
		}
		// Antrean yang tidak bisa dibuka bukan alasan kehilangan entri:
		// runEnqueue akan mencoba kirim langsung.
		if storeErr != nil {
			log.Warn("buka antrean gagal", zap.Error(storeErr))
			store = nil
		}
		if err := runEnqueue(ctx, store, os.Args[2], log); err != nil {
			log.Fatal("enqueue gagal", zap.Error(err))
		}
	case "drain":
		if storeErr != nil {
			log.Fatal("buka antrean gagal", zap.Error(storeErr))
		}
		if err := runDrain(ctx, store, log); err != nil {
			log.Fatal("drain gagal", zap.Error(err))
		}
	case "run":
		if storeErr != nil {
			log.Fatal("buka antrean gagal", zap.Error(storeErr))
		}
		if err := runWatch(ctx, store, log); err != nil {
			log.Fatal("agen berhenti dengan error", zap.Error(err))
		}
	default:
		fmt.Fprintln(os.Stderr, "subcommand tidak dikenal:", os.Args[1])
		os.Exit(2)
	}
}

// runEnqueue membaca file JSON entri, menempelkan jejak sinkronisasi,
// lalu menaruhnya di ekor antrean.
func runEnqueue(ctx context.Context, store *syncqueue.Store, path string, log *zap.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("baca %s: %w", path, err)
	}

	device := getenv("SYNC_DEVICE", hostnameOr("unknown"))

	var body map[string]any
	if err := sonic.Unmarshal(raw, &body); err != nil {
		return fmt.Errorf("file bukan JSON entri yang valid: %w", err)
	}
	body["sync_meta"] = map[string]any{
		"enqueued_at": time.Now().UTC().Format(time.RFC3339),
		"device":      device,
	}
	payload, err := sonic.Marshal(body)
	if err != nil {
		return fmt.Errorf("susun payload: %w", err)
	}

	if store == nil {
		return submitDirect(ctx, payload, device, log)
	}
	id, err := store.Enqueue(ctx, payload, device)
	if err != nil {
		// Penyimpanan lokal penuh/rusak: coba kirim langsung ke server
		log.Warn("antrean lokal gagal, coba kirim langsung", zap.Error(err))
		return submitDirect(ctx, payload, device, log)
	}
	n, _ := store.Count(ctx)
	log.Info("entri masuk antrean",
		zap.Int64("queue_id", id),
		zap.Int("pending", n))
	return nil
}

func submitDirect(ctx context.Context, payload []byte, device string, log *zap.Logger) error {
	client, err := newSubmitter(ctx, log)
	if err != nil {
		return fmt.Errorf("kirim langsung gagal: %w", err)
	}
	item := syncqueue.Item{Kind: syncqueue.KindCreateEntry, Payload: string(payload), Device: device}
	if err := client.Submit(ctx, item); err != nil {
		return fmt.Errorf("kirim langsung gagal: %w", err)
	}
	log.Info("entri terkirim langsung tanpa antrean")
	return nil
}

func newSubmitter(ctx context.Context, log *zap.Logger) (*remote.Client, error) {
	baseURL := getenv("SYNC_SERVER_URL", "http://localhost:3000")
	client := remote.NewClient(baseURL, log)

	username := os.Getenv("SYNC_USERNAME")
	password := os.Getenv("SYNC_PASSWORD")
	if username == "" || password == "" {
		return nil, fmt.Errorf("SYNC_USERNAME / SYNC_PASSWORD belum diset")
	}
	if err := client.Login(ctx, username, password); err != nil {
		return nil, err
	}
	return client, nil
}

func runDrain(ctx context.Context, store *syncqueue.Store, log *zap.Logger) error {
	client, err := newSubmitter(ctx, log)
	if err != nil {
		return err
	}
	drainer := syncqueue.NewDrainer(store, client, log)
	res, err := drainer.Drain(ctx)
	if err != nil {
		return err
	}
	if res.Skipped {
		log.Warn("drain dilewati (offline atau sudah berjalan)")
	}
	return nil
}

// runWatch: drain saat start, lalu pantau konektivitas. Drain dipicu
// ulang setiap transisi offline→online dan tiap interval selama masih
// ada antrean.
func runWatch(ctx context.Context, store *syncqueue.Store, log *zap.Logger) error {
	client, err := newSubmitter(ctx, log)
	if err != nil {
		return err
	}
	drainer := syncqueue.NewDrainer(store, client, log)

	interval := 30 * time.Second
	if v := os.Getenv("SYNC_POLL_INTERVAL"); v != "" {
		if d, perr := time.ParseDuration(v); perr == nil {
			interval = d
		}
	}

	// drain awal
	if _, err := drainer.Drain(ctx); err != nil {
		log.Warn("drain awal gagal", zap.Error(err))
	}

	wasOnline := client.Online(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("agen berjalan", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			log.Info("agen berhenti")
			return nil
		case <-ticker.C:
			online := client.Online(ctx)
			transisi := online && !wasOnline
			wasOnline = online
			if !online {
				continue
			}

			pending, err := store.Count(ctx)
			if err != nil {
				log.Warn("cek antrean gagal", zap.Error(err))
				continue
			}
			if pending == 0 && !transisi {
				continue
			}
			if transisi {
				log.Info("koneksi pulih, drain antrean", zap.Int("pending", pending))
			}
			if _, err := drainer.Drain(ctx); err != nil {
				log.Warn("drain gagal", zap.Error(err))
			}
		}
	}
}

func hostnameOr(def string) string {
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	return def
}
