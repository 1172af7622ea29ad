package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageServiceImpl is a Cloudinary-backed StorageService.
type StorageServiceImpl struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewStorageService creates a new StorageServiceImpl instance.
func NewStorageService(cld *cloudinary.Cloudinary, cloudName string) StorageService {
	return &StorageServiceImpl{cld: cld, cloudName: cloudName}
}

// UploadFile uploads a file to Cloudinary into the specified folder and
// returns its secure URL together with the public id.
func (s *StorageServiceImpl) UploadFile(ctx context.Context, localFilePath, destFolder string) (*UploadResult, error) {
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{Folder: destFolder})
	if err != nil {
		return nil, fmt.Errorf("StorageServiceImpl: failed to upload file: %w", err)
	}
	if result.SecureURL == "" {
		return nil, fmt.Errorf("StorageServiceImpl: no URL returned")
	}
	return &UploadResult{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *StorageServiceImpl) DeleteFile(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("StorageServiceImpl: failed to delete file: %w", err)
	}
	return nil
}
