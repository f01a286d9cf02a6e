// Package publish uploads rendered reports to S3-compatible storage.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/klauspost/compress/gzip"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

const contentType = "text/html; charset=utf-8"

// Config locates the bucket and object the report is written to.
type Config struct {
	Endpoint        string `yaml:"endpoint" toml:"endpoint"`
	Bucket          string `yaml:"bucket" toml:"bucket"`
	Key             string `yaml:"key" toml:"key"`
	Region          string `yaml:"region" toml:"region"`
	AccessKeyID     string `yaml:"accessKeyID" toml:"accessKeyID"`
	SecretAccessKey string `yaml:"secretAccessKey" toml:"secretAccessKey"`
	UseSSL          bool   `yaml:"useSSL" toml:"useSSL"`
	Gzip            bool   `yaml:"gzip" toml:"gzip"`
}

// Enabled reports whether a destination was configured.
func (c Config) Enabled() bool {
	return c.Endpoint != "" || c.Bucket != ""
}

// ObjectStore is the subset of the S3 API the publisher needs.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Publisher writes report documents to one object.
type Publisher struct {
	store ObjectStore
	cfg   Config
}

// New builds a Publisher talking to cfg.Endpoint. The scheme of the
// endpoint, when present, decides whether TLS is used.
func New(cfg Config) (*Publisher, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("publish endpoint is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("publish credentials are required")
	}

	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL
	if u, err := url.Parse(cfg.Endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}
	return NewWithStore(client, cfg), nil
}

// NewWithStore builds a Publisher on an existing store.
func NewWithStore(store ObjectStore, cfg Config) *Publisher {
	return &Publisher{store: store, cfg: cfg}
}

// Publish uploads doc and returns the object location as bucket/key.
func (p *Publisher) Publish(ctx context.Context, doc []byte) (string, error) {
	if p.cfg.Bucket == "" {
		return "", fmt.Errorf("publish bucket is required")
	}
	key := p.cfg.Key
	if key == "" {
		key = "versions.html"
	}

	body := doc
	opts := minio.PutObjectOptions{ContentType: contentType}
	if p.cfg.Gzip {
		compressed, err := compress(doc)
		if err != nil {
			return "", err
		}
		body = compressed
		opts.ContentEncoding = "gzip"
	}

	info, err := p.store.PutObject(ctx, p.cfg.Bucket, key, bytes.NewReader(body), int64(len(body)), opts)
	if err != nil {
		return "", fmt.Errorf("upload %s/%s: %w", p.cfg.Bucket, key, err)
	}
	log.Debug().
		Str("bucket", info.Bucket).
		Str("key", info.Key).
		Str("etag", info.ETag).
		Int64("size", info.Size).
		Msg("Report published")
	return p.cfg.Bucket + "/" + key, nil
}

func compress(doc []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(doc); err != nil {
		return nil, fmt.Errorf("compress report: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress report: %w", err)
	}
	return buf.Bytes(), nil
}
