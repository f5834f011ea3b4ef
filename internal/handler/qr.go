package handler

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/qrfolio-api/internal/config"
	"github.com/yourusername/qrfolio-api/internal/middleware"
	"github.com/yourusername/qrfolio-api/internal/model"
	"github.com/yourusername/qrfolio-api/internal/repository"
	"github.com/yourusername/qrfolio-api/internal/resume"
	"github.com/yourusername/qrfolio-api/internal/service"
)

type QRHandler struct {
	cfg        *config.Config
	qrClient   *service.QRClient
	resumeRepo *repository.ResumeRepo
	subs       middleware.SubscriptionSource
}

func NewQRHandler(cfg *config.Config, qrClient *service.QRClient, resumeRepo *repository.ResumeRepo, subs middleware.SubscriptionSource) *QRHandler {
	return &QRHandler{cfg: cfg, qrClient: qrClient, resumeRepo: resumeRepo, subs: subs}
}

type qrRequest struct {
	Data   string `json:"data"`
	Size   int    `json:"size"`
	Format string `json:"format"`
}

// normalize fills defaults and validates size/format.
func (r *qrRequest) normalize() error {
	if r.Size == 0 {
		r.Size = 200
	}
	if r.Format == "" {
		r.Format = "png"
	}
	if !resume.ValidQRSize(r.Size) {
		return fmt.Errorf("size must be one of 200, 500, 1000")
	}
	if !resume.ValidQRFormat(r.Format) {
		return fmt.Errorf("format must be one of png, jpg, svg")
	}
	return nil
}

// premiumOnly reports whether the requested size/format combination needs a
// premium subscription. SVG output and 1000px downloads are premium.
func (r *qrRequest) premiumOnly() bool {
	return r.Format == "svg" || r.Size == 1000
}

// requirePremium writes a 402 and returns false when a premium size/format
// was requested on a free plan.
func (h *QRHandler) requirePremium(c *gin.Context, req *qrRequest) bool {
	if !req.premiumOnly() {
		return true
	}
	plan := middleware.CurrentPlan(c, h.subs)
	if model.PlanLevel(plan) >= model.PlanLevel(model.PlanPremium) {
		return true
	}
	c.JSON(http.StatusPaymentRequired, gin.H{
		"error":        "upgrade_required",
		"requiredPlan": model.PlanPremium,
		"currentPlan":  plan,
	})
	return false
}

// resolveData returns the QR payload: the request's data, or the user's
// public resume URL when data is omitted.
func (h *QRHandler) resolveData(c *gin.Context, data string) (string, bool) {
	if data != "" {
		return data, true
	}

	userID, err := getUserID(c)
	if err != nil {
		return "", false
	}
	profile, err := h.resumeRepo.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load resume for QR data")
		return "", false
	}
	url := resume.PublicURL(h.cfg.PublicOrigin, profile)
	return url, url != ""
}

// PreviewSizePx is the on-screen QR preview size. Downloads pick from the
// QRSizes list instead.
const PreviewSizePx = 400

// CreateQR handles POST /qr
// Returns a preview descriptor for the payload: the data plus the upstream
// 400px image URL. No bytes are proxied and no premium check applies.
func (h *QRHandler) CreateQR(c *gin.Context) {
	var req struct {
		Data string `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	data, ok := h.resolveData(c, req.Data)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data to encode. Save your resume with a full name first."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"url":  h.qrClient.ImageURL(data, PreviewSizePx, "png"),
	})
}

// DownloadQR handles GET /qr/download
// Proxies the rendered QR image with an attachment disposition.
func (h *QRHandler) DownloadQR(c *gin.Context) {
	req := qrRequest{Data: c.Query("data"), Format: c.Query("format")}
	if s := c.Query("size"); s != "" {
		size, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid size"})
			return
		}
		req.Size = size
	}
	if err := req.normalize(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, ok := h.resolveData(c, req.Data)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data to encode. Save your resume with a full name first."})
		return
	}

	if !h.requirePremium(c, &req) {
		return
	}

	img, contentType, err := h.qrClient.Fetch(c.Request.Context(), data, req.Size, req.Format)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch QR image")
		c.JSON(http.StatusBadGateway, gin.H{"error": "QR service unavailable"})
		return
	}
	if contentType == "" {
		contentType = "image/" + req.Format
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=qr-code.%s", req.Format))
	c.Data(http.StatusOK, contentType, img)
}

type bulkRequest struct {
	Entries string `json:"entries" binding:"required"`
	Size    int    `json:"size"`
	Format  string `json:"format"`
}

// parseEntries splits and bounds-checks the newline block, writing the 400
// itself on failure.
func parseEntries(c *gin.Context, block string) ([]string, bool) {
	entries := resume.ParseBulkLines(block)
	if len(entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No entries to encode"})
		return nil, false
	}
	if len(entries) > resume.MaxBulkEntries {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Too many entries: %d (max %d)", len(entries), resume.MaxBulkEntries),
		})
		return nil, false
	}
	return entries, true
}

// CreateBulk handles POST /qr/bulk
// Accepts a newline-delimited block and returns one on-screen preview
// descriptor per entry. Like the single preview these are fixed at 400px
// PNG; size and format are chosen at download time.
func (h *QRHandler) CreateBulk(c *gin.Context) {
	var req struct {
		Entries string `json:"entries" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entries is required"})
		return
	}

	entries, ok := parseEntries(c, req.Entries)
	if !ok {
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, data := range entries {
		items = append(items, gin.H{
			"data": data,
			"url":  h.qrClient.ImageURL(data, PreviewSizePx, "png"),
		})
	}

	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

// DownloadBulk handles POST /qr/bulk/download
// Fetches every image and streams back a zip archive. Entries that fail
// upstream are skipped rather than failing the whole archive.
func (h *QRHandler) DownloadBulk(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entries is required"})
		return
	}

	qr := qrRequest{Size: req.Size, Format: req.Format}
	if err := qr.normalize(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, ok := parseEntries(c, req.Entries)
	if !ok {
		return
	}

	if !h.requirePremium(c, &qr) {
		return
	}

	delay := time.Duration(h.cfg.BulkFetchDelayMS) * time.Millisecond
	images, err := h.qrClient.FetchAll(c.Request.Context(), entries, qr.Size, qr.Format, delay)
	if err != nil {
		log.Error().Err(err).Msg("Bulk QR fetch aborted")
		c.JSON(http.StatusBadGateway, gin.H{"error": "QR service unavailable"})
		return
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	var written int
	for i, img := range images {
		if img.Err != nil || len(img.Bytes) == 0 {
			continue
		}
		f, err := zw.Create(fmt.Sprintf("qrcode-%d.%s", i+1, qr.Format))
		if err != nil {
			log.Error().Err(err).Msg("Failed to add zip entry")
			continue
		}
		if _, err := f.Write(img.Bytes); err != nil {
			log.Error().Err(err).Msg("Failed to write zip entry")
			continue
		}
		written++
	}
	if err := zw.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to finish zip archive")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build archive"})
		return
	}
	if written == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"error": "QR service unavailable"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=qr-codes.zip")
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}
