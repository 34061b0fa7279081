package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
)

// PhotoStore writes step photos to MinIO when configured, local disk
// otherwise. The returned path is what gets persisted on the StepPhoto row.
type PhotoStore struct {
	client   *minio.Client
	bucket   string
	localDir string
}

func NewPhotoStore(client *minio.Client, bucket, localDir string) *PhotoStore {
	return &PhotoStore{client: client, bucket: bucket, localDir: localDir}
}

// Save stores one image under the given object name
func (p *PhotoStore) Save(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if p.client != nil {
		_, err := p.client.PutObject(ctx, p.bucket, objectName, reader, size, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return "", fmt.Errorf("upload photo: %w", err)
		}
		return objectName, nil
	}

	path := filepath.Join(p.localDir, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create photo dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write photo file: %w", err)
	}
	return path, nil
}
