package service

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxPhotoBytes caps profile photo uploads at 80KB, matching what the
// public resume page is willing to serve inline.
const MaxPhotoBytes = 80 * 1024

// StorageService uploads profile photos to a Cloud Storage bucket and
// hands back their public URLs.
type StorageService struct {
	client *storage.Client
	bucket string
}

func NewStorageService(ctx context.Context, bucket string) (*StorageService, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &StorageService{client: client, bucket: bucket}, nil
}

// UploadPhoto stores the photo under a per-user object name and returns the
// public URL. Re-uploading overwrites the previous photo.
func (s *StorageService) UploadPhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error) {
	if len(data) > MaxPhotoBytes {
		return "", fmt.Errorf("photo exceeds %dKB limit", MaxPhotoBytes/1024)
	}

	object := fmt.Sprintf("resume-photos/%s", userID)
	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=3600"

	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("writing photo object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finishing photo upload: %w", err)
	}

	publicURL := fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, object)
	log.Info().Str("userId", userID.String()).Int("bytes", len(data)).Msg("Profile photo uploaded")
	return publicURL, nil
}

// DeletePhoto removes the user's photo object. Missing objects are not an
// error; the profile may never have had one.
func (s *StorageService) DeletePhoto(ctx context.Context, userID uuid.UUID) error {
	object := fmt.Sprintf("resume-photos/%s", userID)
	err := s.client.Bucket(s.bucket).Object(object).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting photo object: %w", err)
	}
	return nil
}
