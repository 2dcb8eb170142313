// internals/helpers/convert_image.go
package helper

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const maxImageDimension = 1024

// ConvertImageToWebP men-decode upload (jpg/png/webp), resize bila melebihi
// dimensi maksimum, lalu encode ulang sebagai WebP quality 85.
func ConvertImageToWebP(fh *multipart.FileHeader) (*bytes.Buffer, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))

	var img image.Image
	switch ext {
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(src)
		if err != nil {
			return nil, fmt.Errorf("file JPEG tidak valid: %w", err)
		}
	case ".png":
		img, err = png.Decode(src)
		if err != nil {
			return nil, fmt.Errorf("file PNG tidak valid: %w", err)
		}
	case ".webp":
		img, err = webp.Decode(src)
		if err != nil {
			return nil, fmt.Errorf("file WebP tidak valid: %w", err)
		}
	default:
		return nil, fmt.Errorf("format tidak didukung (jpg, jpeg, png, webp)")
	}

	b := img.Bounds()
	if b.Dx() > maxImageDimension || b.Dy() > maxImageDimension {
		img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: 85}); err != nil {
		return nil, fmt.Errorf("gagal konversi ke WebP: %w", err)
	}
	return buf, nil
}

// UploadImageToSupabase: konversi ke WebP + upload ke bucket image, return public URL.
func UploadImageToSupabase(folder string, fh *multipart.FileHeader) (string, error) {
	const maxBytes = 5 * 1024 * 1024
	if fh.Size > maxBytes {
		return "", fmt.Errorf("ukuran gambar maksimal 5MB")
	}

	buf, err := ConvertImageToWebP(fh)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	filename := GenerateUniqueFilename(folder, base+".webp")

	if err := UploadToSupabase("image", filename, "image/webp", buf); err != nil {
		return "", fmt.Errorf("upload gambar gagal: %w", err)
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/image/%s",
		os.Getenv("SUPABASE_PROJECT_URL"),
		url.PathEscape(filename),
	)
	return publicURL, nil
}

func sanitizeFilename(filename string) string {
	// Hapus karakter selain huruf, angka, titik, dash, underscore
	re := regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	return re.ReplaceAllString(filename, "_")
}

func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	uuidStr := uuid.New().String()
	safeFilename := sanitizeFilename(originalFilename)
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuidStr, safeFilename)
}

func UploadToSupabase(bucket, filename, contentType string, data *bytes.Buffer) error {
	supabaseURL := os.Getenv("SUPABASE_PROJECT_URL")
	supabaseKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")

	fmt.Println("📦 Upload to Supabase")
	fmt.Println("📁 Bucket:", bucket)
	fmt.Println("📄 Filename:", filename)
	fmt.Println("📏 Size (bytes):", data.Len())

	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("SUPABASE_PROJECT_URL atau SUPABASE_SERVICE_ROLE_KEY belum diset")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", supabaseURL, bucket, filename)

	req, err := http.NewRequest("PUT", endpoint, data)
	if err != nil {
		return fmt.Errorf("gagal membuat request upload: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+supabaseKey)
	req.Header.Set("Content-Type", contentType)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("gagal mengirim request upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		fmt.Println("❌ Upload gagal:", string(body))
		return fmt.Errorf("upload gagal status %d: %s", resp.StatusCode, string(body))
	}

	fmt.Println("✅ Upload sukses ke:", endpoint)
	return nil
}

func DeleteFromSupabase(bucket, path string) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		os.Getenv("SUPABASE_PROJECT_URL"), bucket, path)

	req, err := http.NewRequest("DELETE", endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete gagal status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// ExtractSupabaseStoragePath: ambil path objek dari public URL bucket image.
func ExtractSupabaseStoragePath(fullURL string) string {
	parts := strings.Split(fullURL, "/storage/v1/object/public/image/")
	if len(parts) == 2 {
		if p, err := url.PathUnescape(parts[1]); err == nil {
			return p
		}
		return parts[1]
	}
	return ""
}
