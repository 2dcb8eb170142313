// internals/syncqueue/remote/client.go
package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"sigesit_backend/internals/syncqueue"
)

// Client: sisi HTTP agen sinkronisasi — login, cek konektivitas, dan
// kirim entri antrean ke server.
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &Client{http: c, log: log}
}

type loginResponse struct {
	Success bool `json:"success"`
	Data    struct {
		AccessToken string `json:"access_token"`
	} `json:"data"`
}

// Login menukar kredensial kader dengan access token yang dipakai
// untuk seluruh pengiriman berikutnya.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var out loginResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		Post("/api/auth/login")
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if resp.IsError() || !out.Success || out.Data.AccessToken == "" {
		return fmt.Errorf("login ditolak: status %d", resp.StatusCode())
	}
	c.http.SetAuthToken(out.Data.AccessToken)
	c.log.Info("login berhasil", zap.String("username", username))
	return nil
}

// Online memeriksa /health dengan timeout pendek. Kegagalan apa pun
// dianggap offline.
func (c *Client) Online(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	resp, err := c.http.R().SetContext(probeCtx).Get("/health")
	if err != nil {
		return false
	}
	return resp.IsSuccess()
}

// Submit mengirim satu item antrean sebagai pembuatan entri baru.
// Respons non-2xx dikembalikan sebagai error supaya item tetap di antrean.
func (c *Client) Submit(ctx context.Context, item syncqueue.Item) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody([]byte(item.Payload)).
		Post("/api/u/entries")
	if err != nil {
		return fmt.Errorf("kirim entri: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("server menolak entri: status %d body=%s",
			resp.StatusCode(), resp.String())
	}
	return nil
}
