package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/fitnesshub/fitnesshub-api/internal/storage"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrUploadFileNameRequired = errors.New("fileName is required")
	ErrUploadURLGeneration    = errors.New("failed to generate upload URL")
)

// UploadService hands out presigned URLs so clients upload trainer-profile
// and class images straight to object storage.
type UploadService interface {
	// GenerateImageUploadURL returns a presigned PUT URL and the object key
	// the client should reference after uploading.
	GenerateImageUploadURL(ctx context.Context, fileName, contentType string) (uploadURL, objectKey string, err error)
}

// uploadService implements the UploadService interface.
type uploadService struct {
	files storage.FileStorage
}

// NewUploadService creates a new instance of uploadService.
func NewUploadService(files storage.FileStorage) UploadService {
	return &uploadService{files: files}
}

// GenerateImageUploadURL namespaces the object key with a uuid so repeated
// uploads of the same file name never collide.
func (s *uploadService) GenerateImageUploadURL(ctx context.Context, fileName, contentType string) (string, string, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return "", "", ErrUploadFileNameRequired
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectKey := fmt.Sprintf("images/%s%s", uuid.New().String(), path.Ext(fileName))
	uploadURL, err := s.files.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", ErrUploadURLGeneration
	}
	return uploadURL, objectKey, nil
}
