package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// UploadResult is what callers persist after a successful upload. Duration is
// only meaningful for video assets and may be zero when the store cannot
// probe the media.
type UploadResult struct {
	URL      string
	Duration float64
}

// AssetStore is the external upload collaborator. Mutations that carry files
// upload first and persist the returned URL afterwards, so a failed upload
// never leaves a dangling reference.
type AssetStore interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (*UploadResult, error)
	Delete(ctx context.Context, assetURL string) error
}

type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func NewMinioStore(cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return &MinioStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: fmt.Sprintf("%s://%s", scheme, cfg.Endpoint),
	}, nil
}

// Upload streams the multipart file into the bucket under a uuid object name
// and returns the public URL.
func (s *MinioStore) Upload(ctx context.Context, file *multipart.FileHeader) (*UploadResult, error) {
	if file == nil {
		return nil, fmt.Errorf("no file provided")
	}
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	objectName := uuid.New().String() + ext
	contentType := file.Header.Get("Content-Type")

	_, err = s.client.PutObject(ctx, s.bucket, objectName, src, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		URL: fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectName),
	}, nil
}

// Delete removes a previously uploaded asset by its public URL. Unknown URLs
// are ignored so replacing a never-set avatar is not an error.
func (s *MinioStore) Delete(ctx context.Context, assetURL string) error {
	if assetURL == "" {
		return nil
	}
	u, err := url.Parse(assetURL)
	if err != nil {
		return err
	}
	objectName := path.Base(u.Path)
	if objectName == "" || objectName == "/" || !strings.Contains(u.Path, s.bucket) {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}
