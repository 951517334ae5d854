package document

import (
	"bytes"
	"context"
	"fmt"

	"freightbook/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Store is the document store collaborator: it accepts a raw payload and
// returns the record ID under which it was stored.
type Store interface {
	Upload(ctx context.Context, docType string, payload []byte) (string, error)
}

// CloudinaryStore implements Store on Cloudinary.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore initializes the Cloudinary client from AppConfig.
func NewCloudinaryStore() (*CloudinaryStore, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: "freightbook/documents"}, nil
}

// Upload stores the payload under a generated public ID and returns it.
func (s *CloudinaryStore) Upload(ctx context.Context, docType string, payload []byte) (string, error) {
	publicID := fmt.Sprintf("%s-%s", docType, uuid.New().String())
	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(payload), uploader.UploadParams{
		Folder:   s.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("document upload failed: %w", err)
	}
	if resp.PublicID == "" {
		return "", fmt.Errorf("document upload returned no record id")
	}
	return resp.PublicID, nil
}
