package utils

import (
	"fmt"

	"atstay/config"
	"atstay/services/storage"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Cloudinary initializes and returns a Cloudinary-based StorageService.
func Cloudinary() (storage.StorageService, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("utils.Cloudinary: failed to initialize Cloudinary: %w", err)
	}

	return storage.NewStorageService(cld, cfg.CloudinaryCloudName), nil
}
