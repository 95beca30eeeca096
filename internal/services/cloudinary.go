// internal/services/cloudinary.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/RainerNsa/PhCityRent-sub000/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ReceiptUploader pushes a rendered receipt somewhere shareable and returns
// the public URL.
type ReceiptUploader interface {
	UploadReceipt(ctx context.Context, filename string, artifact []byte) (string, error)
}

// CloudinaryService hosts receipt artifacts so share links can point at
// something durable instead of the API itself.
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary client: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("Verifying Cloudinary credentials...")
	if _, err := cld.Admin.Assets(verifyCtx, admin.AssetsParams{MaxResults: 1}); err != nil {
		return nil, fmt.Errorf("failed to verify Cloudinary credentials: %w", err)
	}

	log.Println("✅ Cloudinary service successfully initialized.")
	return &CloudinaryService{cld: cld}, nil
}

// UploadReceipt stores the artifact under receipts/ keyed by its filename,
// overwriting any previous upload for the same reference.
func (s *CloudinaryService) UploadReceipt(ctx context.Context, filename string, artifact []byte) (string, error) {
	overwrite := true
	publicID := strings.TrimSuffix(filename, "."+extOf(filename))

	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(artifact), uploader.UploadParams{
		PublicID:     publicID,
		Folder:       "receipts",
		ResourceType: "raw",
		Overwrite:    &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt '%s': %w", filename, err)
	}

	log.Printf("INFO: Uploaded receipt '%s' to Cloudinary", filename)
	return result.SecureURL, nil
}

func extOf(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i+1:]
	}
	return ""
}
