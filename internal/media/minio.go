// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

package media

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/majallahq/majalla/internal/platform/config"
	"github.com/majallahq/majalla/pkg/uuidv7"
)

// MinIOStorage stores uploads in an S3-compatible bucket.
type MinIOStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinIOStorage connects to the configured endpoint and ensures the bucket
// exists (idempotent).
func NewMinIOStorage(cfg *config.Config) (*MinIOStorage, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio connect: %w", err)
	}

	storage := &MinIOStorage{
		client:  client,
		bucket:  cfg.MinIOBucket,
		baseURL: strings.TrimSuffix(cfg.MediaBaseURL, "/"),
	}
	if storage.baseURL == "" {
		scheme := "http"
		if cfg.MinIOUseSSL {
			scheme = "https"
		}
		storage.baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.MinIOEndpoint, cfg.MinIOBucket)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.MakeBucket(ctx, storage.bucket, minio.MakeBucketOptions{}); err != nil {
		exists, checkErr := client.BucketExists(ctx, storage.bucket)
		if checkErr != nil || !exists {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}

	return storage, nil
}

// Ping verifies the bucket is reachable, for readiness probes.
func (storage *MinIOStorage) Ping(ctx context.Context) error {
	_, err := storage.client.BucketExists(ctx, storage.bucket)
	return err
}

func (storage *MinIOStorage) Upload(ctx context.Context, upload Upload) (*Record, error) {
	id := uuidv7.New()
	ext := strings.ToLower(filepath.Ext(upload.Name))
	key := id + ext

	_, err := storage.client.PutObject(ctx, storage.bucket, key,
		bytes.NewReader(upload.Data), int64(len(upload.Data)),
		minio.PutObjectOptions{ContentType: upload.ContentType},
	)
	if err != nil {
		return nil, fmt.Errorf("minio put %q: %w", key, err)
	}

	return &Record{
		ID:          id,
		Name:        upload.Name,
		Size:        int64(len(upload.Data)),
		ContentType: upload.ContentType,
		URL:         storage.baseURL + "/" + key,
		UploadedAt:  time.Now().UTC(),
	}, nil
}
