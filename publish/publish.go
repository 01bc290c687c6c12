// Package publish uploads a finished report to object storage.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
)

// Publisher uploads a local file and returns where it ended up. Close
// releases the underlying client.
type Publisher interface {
	Publish(ctx context.Context, localPath string) (string, error)
	io.Closer
}

// Config selects the destinations. A destination without a bucket is off.
type Config struct {
	S3  S3Config  `yaml:"s3"`
	GCS GCSConfig `yaml:"gcs"`
}

// Enabled reports whether any destination is configured.
func (c Config) Enabled() bool {
	return c.S3.enabled() || c.GCS.enabled()
}

// FromConfig builds a publisher for every configured destination. It
// returns nil when nothing is configured.
func FromConfig(ctx context.Context, cfg Config) (Publisher, error) {
	var all multi
	if cfg.S3.enabled() {
		s3, err := NewS3(cfg.S3)
		if err != nil {
			return nil, err
		}
		all = append(all, s3)
	}
	if cfg.GCS.enabled() {
		gcs, err := NewGCS(ctx, cfg.GCS)
		if err != nil {
			all.Close()
			return nil, err
		}
		all = append(all, gcs)
	}
	switch len(all) {
	case 0:
		return nil, nil
	case 1:
		return all[0], nil
	}
	return all, nil
}

// multi publishes to each destination in turn and stops at the first failure.
type multi []Publisher

func (m multi) Publish(ctx context.Context, localPath string) (string, error) {
	locations := make([]string, 0, len(m))
	for _, p := range m {
		loc, err := p.Publish(ctx, localPath)
		if err != nil {
			return strings.Join(locations, ", "), err
		}
		locations = append(locations, loc)
	}
	return strings.Join(locations, ", "), nil
}

// Close closes every destination and joins their errors.
func (m multi) Close() error {
	var errs []error
	for _, p := range m {
		errs = append(errs, p.Close())
	}
	return errors.Join(errs...)
}

func objectKey(prefix, localPath string) string {
	name := filepath.Base(localPath)
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func contentType(localPath string) string {
	switch strings.ToLower(filepath.Ext(localPath)) {
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

func checkFile(localPath string) error {
	if strings.TrimSpace(localPath) == "" {
		return fmt.Errorf("local path is required")
	}
	return nil
}
