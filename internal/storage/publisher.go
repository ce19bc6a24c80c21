package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/robalyx/stemdata/internal/setup/config"
	"github.com/robalyx/stemdata/pkg/utils"
	"go.uber.org/zap"
)

// ErrStorageNotConfigured is returned when the storage section lacks required values.
var ErrStorageNotConfigured = errors.New("storage is not configured")

// archiveContentType is sent with every uploaded archive.
const archiveContentType = "application/zip"

// Publisher uploads archives to S3-compatible object storage using the MinIO client.
type Publisher struct {
	client *minio.Client
	bucket string
	region string
	prefix string
	retry  utils.RetryOptions
	logger *zap.Logger
}

// Upload describes a published archive.
type Upload struct {
	Bucket string
	Key    string
	Size   int64
	ETag   string
}

// NewPublisher creates a publisher from the storage configuration.
func NewPublisher(cfg *config.Storage, logger *zap.Logger) (*Publisher, error) {
	// Clean endpoint URL
	endpoint := strings.TrimSpace(cfg.Endpoint)
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	var missing []string
	if endpoint == "" {
		missing = append(missing, "endpoint")
	}
	if strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		missing = append(missing, "access_key/secret_key")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		missing = append(missing, "bucket")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrStorageNotConfigured, strings.Join(missing, ", "))
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &Publisher{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		prefix: strings.Trim(cfg.Prefix, "/"),
		retry:  utils.GetUploadRetryOptions(),
		logger: logger.Named("storage"),
	}, nil
}

// ObjectKey returns the bucket key an archive file is stored under.
func (p *Publisher) ObjectKey(archivePath string) string {
	name := filepath.Base(archivePath)
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

// Publish uploads the archive, creating the bucket when it does not exist yet.
// Transient failures are retried with exponential backoff.
func (p *Publisher) Publish(ctx context.Context, archivePath string) (*Upload, error) {
	if _, err := os.Stat(archivePath); err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}

	key := p.ObjectKey(archivePath)

	upload, err := utils.WithRetry(ctx, func() (*Upload, error) {
		if err := p.ensureBucket(ctx); err != nil {
			return nil, err
		}

		info, err := p.client.FPutObject(ctx, p.bucket, key, archivePath, minio.PutObjectOptions{
			ContentType: archiveContentType,
		})
		if err != nil {
			p.logger.Warn("Upload attempt failed",
				zap.String("key", key),
				zap.Error(err))

			if isPermanent(err) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}

		return &Upload{Bucket: info.Bucket, Key: info.Key, Size: info.Size, ETag: info.ETag}, nil
	}, p.retry)
	if err != nil {
		return nil, fmt.Errorf("failed to put object %s: %w", key, err)
	}

	p.logger.Info("Published archive",
		zap.String("bucket", upload.Bucket),
		zap.String("key", upload.Key),
		zap.Int64("size", upload.Size))

	return upload, nil
}

// ensureBucket creates the bucket if it is missing.
func (p *Publisher) ensureBucket(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if exists {
		return nil
	}

	if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{Region: p.region}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	p.logger.Info("Created bucket", zap.String("bucket", p.bucket))

	return nil
}

// isPermanent reports whether an upload error will not go away on retry.
func isPermanent(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "NoSuchBucket", "InvalidBucketName":
		return true
	default:
		return false
	}
}
