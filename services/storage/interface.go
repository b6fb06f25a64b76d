package storage

import (
	"context"
)

// StorageService abstracts document storage for pandit credential uploads.
type StorageService interface {
	// UploadFile uploads the file at localFilePath into destFolder and
	// returns its permanent identifier.
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	// DeleteFile removes a previously uploaded file by its identifier.
	DeleteFile(ctx context.Context, publicID string) error
	// GetDownloadURL resolves a file identifier to a fetchable URL.
	GetDownloadURL(ctx context.Context, publicID string) (string, error)
}
