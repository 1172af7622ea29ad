package storage

import "context"

// UploadResult identifies a stored asset: the public URL to serve it from and
// the provider id needed to delete it again.
type UploadResult struct {
	URL      string
	PublicID string
}

// StorageService uploads media assets and removes them again.
type StorageService interface {
	UploadFile(ctx context.Context, localFilePath, destFolder string) (*UploadResult, error)
	DeleteFile(ctx context.Context, publicID string) error
}
