package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yourusername/qrfolio-api/internal/resume"
)

// QRClient wraps the api.qrserver.com image API. The upstream renders the
// QR code; we only build request URLs and proxy the bytes through.
type QRClient struct {
	baseURL string
	client  *http.Client
}

func NewQRClient(baseURL string) *QRClient {
	if baseURL == "" {
		baseURL = resume.DefaultQRAPIBase
	}
	return &QRClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// ImageURL builds the upstream request URL without fetching it. Handed to
// clients that want to embed the image directly.
func (q *QRClient) ImageURL(data string, sizePx int, format string) string {
	if format == "" || format == "png" {
		return resume.QRImageURL(q.baseURL, data, sizePx)
	}
	return resume.QRImageURLWithFormat(q.baseURL, data, sizePx, format)
}

// Fetch downloads the rendered QR image and returns its bytes plus the
// upstream content type.
func (q *QRClient) Fetch(ctx context.Context, data string, sizePx int, format string) ([]byte, string, error) {
	reqURL := q.ImageURL(data, sizePx, format)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building qr request: %w", err)
	}

	log.Debug().Str("size", fmt.Sprintf("%dpx", sizePx)).Str("format", format).Msg("Fetching QR image")

	resp, err := q.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching qr image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("qr api returned %d: %s", resp.StatusCode, string(body))
	}

	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading qr image: %w", err)
	}

	return img, resp.Header.Get("Content-Type"), nil
}

// BulkImage pairs one bulk input line with its fetched image.
type BulkImage struct {
	Data  string
	Bytes []byte
	Err   error
}

// FetchAll downloads QR images for each data entry sequentially, pausing
// between fetches to stay polite to the free upstream. Individual failures
// are recorded per entry rather than aborting the batch.
func (q *QRClient) FetchAll(ctx context.Context, entries []string, sizePx int, format string, delay time.Duration) ([]BulkImage, error) {
	out := make([]BulkImage, 0, len(entries))
	for i, data := range entries {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case <-time.After(delay):
			}
		}
		img, _, err := q.Fetch(ctx, data, sizePx, format)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("Bulk QR fetch failed for entry")
		}
		out = append(out, BulkImage{Data: data, Bytes: img, Err: err})
	}
	return out, nil
}
