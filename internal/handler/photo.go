package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/qrfolio-api/internal/repository"
	"github.com/yourusername/qrfolio-api/internal/service"
)

type PhotoHandler struct {
	storage    *service.StorageService
	resumeRepo *repository.ResumeRepo
}

func NewPhotoHandler(storage *service.StorageService, resumeRepo *repository.ResumeRepo) *PhotoHandler {
	return &PhotoHandler{storage: storage, resumeRepo: resumeRepo}
}

// Upload handles POST /resume/photo
// Accepts an image via multipart form, stores it, and saves the public URL
// on the resume profile.
func (h *PhotoHandler) Upload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Size > service.MaxPhotoBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo too large. Maximum size is 80KB."})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are supported"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, service.MaxPhotoBytes+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded photo")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	if len(data) > service.MaxPhotoBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo too large. Maximum size is 80KB."})
		return
	}

	photoURL, err := h.storage.UploadPhoto(c.Request.Context(), userID, data, contentType)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upload photo")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
		return
	}

	profile, err := h.resumeRepo.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load resume for photo")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
		return
	}
	if err := h.resumeRepo.UpdatePhotoURL(c.Request.Context(), profile.ID, photoURL); err != nil {
		log.Error().Err(err).Msg("Failed to save photo url")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profilePhotoUrl": photoURL})
}

// Delete handles DELETE /resume/photo
func (h *PhotoHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := h.storage.DeletePhoto(c.Request.Context(), userID); err != nil {
		log.Error().Err(err).Msg("Failed to delete photo")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete photo"})
		return
	}

	profile, err := h.resumeRepo.GetOrCreate(c.Request.Context(), userID)
	if err == nil {
		if err := h.resumeRepo.UpdatePhotoURL(c.Request.Context(), profile.ID, ""); err != nil {
			log.Error().Err(err).Msg("Failed to clear photo url")
		}
	}

	c.JSON(http.StatusOK, gin.H{"profilePhotoUrl": ""})
}
