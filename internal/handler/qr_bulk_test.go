package handler

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/qrfolio-api/internal/config"
	"github.com/yourusername/qrfolio-api/internal/model"
	"github.com/yourusername/qrfolio-api/internal/service"
)

// stubSubs serves a canned subscription row in place of the database.
type stubSubs struct {
	sub *model.Subscription
}

func (s stubSubs) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Subscription, error) {
	return s.sub, nil
}

func bulkTestRouter(t *testing.T, upstream string, sub *model.Subscription) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{BulkFetchDelayMS: 0}
	h := NewQRHandler(cfg, service.NewQRClient(upstream), nil, stubSubs{sub: sub})

	r := gin.New()
	r.POST("/qr/bulk", h.CreateBulk)
	r.POST("/qr/bulk/download", h.DownloadBulk)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBulk_ReturnsPreviewDescriptors(t *testing.T) {
	// No subscription at all: bulk previews are open to every signed-in
	// user, with images fixed at the 400px on-screen size.
	r := bulkTestRouter(t, "https://qr.example/", nil)

	w := postJSON(r, "/qr/bulk", `{"entries": "https://a.example\nhttps://b.example"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
		Items []struct {
			Data string `json:"data"`
			URL  string `json:"url"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "https://a.example", resp.Items[0].Data)
	assert.Contains(t, resp.Items[0].URL, "size=400x400")
	assert.NotContains(t, resp.Items[0].URL, "format=")
}

func TestCreateBulk_TooManyEntries(t *testing.T) {
	r := bulkTestRouter(t, "https://qr.example/", nil)

	lines := make([]string, 51)
	for i := range lines {
		lines[i] = "https://example.com/1"
	}
	w := postJSON(r, "/qr/bulk", `{"entries": "`+strings.Join(lines, `\n`)+`"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Too many entries: 51 (max 50)")
}

func TestDownloadBulk_ZipEntryNaming(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer upstream.Close()

	r := bulkTestRouter(t, upstream.URL+"/", nil)

	w := postJSON(r, "/qr/bulk/download", `{"entries": "https://a.example\nhttps://b.example\nhttps://c.example"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=qr-codes.zip", w.Header().Get("Content-Disposition"))

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)
	assert.Equal(t, "qrcode-1.png", zr.File[0].Name)
	assert.Equal(t, "qrcode-2.png", zr.File[1].Name)
	assert.Equal(t, "qrcode-3.png", zr.File[2].Name)
}

func TestDownloadBulk_PremiumSizeRequiresUpgrade(t *testing.T) {
	r := bulkTestRouter(t, "https://qr.example/", nil)

	w := postJSON(r, "/qr/bulk/download", `{"entries": "https://a.example", "size": 1000}`)
	require.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "upgrade_required")
}

func TestDownloadBulk_DefaultSizeOpenToFreeUsers(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer upstream.Close()

	r := bulkTestRouter(t, upstream.URL+"/", nil)

	w := postJSON(r, "/qr/bulk/download", `{"entries": "https://a.example"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
