package storage

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"videoflix-service/ddd/domain/gateway"
	"videoflix-service/pkg/config"
	"videoflix-service/pkg/logger"
)

// contentTypes by extension for the artifacts the pipeline produces.
var contentTypes = map[string]string{
	".m3u8": "application/vnd.apple.mpegurl",
	".ts":   "video/mp2t",
	".mp4":  "video/mp4",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// MinioPublisher mirrors derived artifacts into an object storage bucket.
type MinioPublisher struct {
	client *minio.Client
	bucket string
}

var _ gateway.ArtifactPublisher = (*MinioPublisher)(nil)

// NewMinioPublisher connects to MinIO and ensures the bucket exists.
func NewMinioPublisher(ctx context.Context, cfg config.MinioConfig) (*MinioPublisher, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio connect: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
		logger.Infof("MinIO bucket created name=%s", cfg.BucketName)
	}

	return &MinioPublisher{client: client, bucket: cfg.BucketName}, nil
}

// PublishDir uploads every regular file under localDir to keyPrefix,
// preserving the relative layout. Object keys always use forward slashes.
func (p *MinioPublisher) PublishDir(ctx context.Context, localDir, keyPrefix string) error {
	return filepath.WalkDir(localDir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(localDir, filePath)
		if err != nil {
			return err
		}
		key := path.Join(keyPrefix, filepath.ToSlash(rel))

		opts := minio.PutObjectOptions{ContentType: contentTypeFor(filePath)}
		if _, err := p.client.FPutObject(ctx, p.bucket, key, filePath, opts); err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
		return nil
	})
}

func contentTypeFor(p string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(p))]; ok {
		return ct
	}
	return "application/octet-stream"
}
