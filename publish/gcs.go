package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSConfig addresses a Google Cloud Storage bucket. Without a credentials
// file the client falls back to application default credentials.
type GCSConfig struct {
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

func (c GCSConfig) enabled() bool {
	return strings.TrimSpace(c.Bucket) != ""
}

// GCS uploads reports to a Cloud Storage bucket.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCS creates the storage client.
func NewGCS(ctx context.Context, cfg GCSConfig) (*GCS, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("gcs bucket is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("init gcs client: %w", err)
	}
	return &GCS{client: client, bucket: bucket, prefix: cfg.Prefix}, nil
}

// Publish streams localPath into the bucket.
func (g *GCS) Publish(ctx context.Context, localPath string) (string, error) {
	if err := checkFile(localPath); err != nil {
		return "", err
	}
	file, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	key := objectKey(g.prefix, localPath)
	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType(localPath)
	if _, err := io.Copy(w, file); err != nil {
		w.Close()
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return "gs://" + g.bucket + "/" + key, nil
}

// Close releases the client.
func (g *GCS) Close() error {
	return g.client.Close()
}
