package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/example/voltline/internal/config"
)

// StoredFile describes one object in the upload bucket.
type StoredFile struct {
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// FileStorage stores uploaded media and catalogue PDFs.
type FileStorage interface {
	Upload(ctx context.Context, folder, filename string, r io.Reader, size int64, contentType string) (string, error)
	List(ctx context.Context) ([]StoredFile, error)
}

// MinioStorage keeps uploads in an S3-compatible bucket.
type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStorage connects to the bucket and creates it when missing.
func NewMinioStorage(ctx context.Context, cfg config.StorageConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	return &MinioStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicBase(cfg),
	}, nil
}

// Upload stores r under folder with a generated name and returns its public URL.
func (s *MinioStorage) Upload(ctx context.Context, folder, filename string, r io.Reader, size int64, contentType string) (string, error) {
	key := ObjectKey(folder, filename)
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("minio put %s: %w", key, err)
	}
	return s.url(key), nil
}

// List returns every object in the bucket.
func (s *MinioStorage) List(ctx context.Context) ([]StoredFile, error) {
	files := []StoredFile{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		files = append(files, StoredFile{
			Key:          obj.Key,
			URL:          s.url(obj.Key),
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified,
		})
	}
	return files, nil
}

func (s *MinioStorage) url(key string) string {
	return s.publicURL + "/" + key
}

func publicBase(cfg config.StorageConfig) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}

// ObjectKey builds a collision free key that keeps the original extension.
func ObjectKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(folder, time.Now().UTC().Format("2006/01"), uuid.NewString()+ext)
}

// TotalSize sums the sizes of files.
func TotalSize(files []StoredFile) int64 {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total
}
