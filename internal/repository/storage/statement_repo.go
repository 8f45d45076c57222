package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"
)

// StatementRepository defines the interface for exported statement storage
type StatementRepository interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// StatementObjectPath builds the canonical object path for one owner's
// monthly statement export
func StatementObjectPath(ownerID int32, year, month int) string {
	filename := fmt.Sprintf("%04d-%02d.csv", year, month)
	return path.Join("statements", fmt.Sprintf("%d", ownerID), filename)
}
