// Package storage keeps uploaded media on local disk or in an
// S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"paxala/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Object describes a stored file.
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// New returns S3 storage when a bucket is configured and local disk otherwise.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (Storage, error) {
	if cfg.S3Bucket == "" {
		log.Info("storage: local disk", zap.String("dir", cfg.UploadDir))
		return NewLocal(cfg.UploadDir, cfg.PublicBaseURL+"/uploads"), nil
	}
	s, err := NewS3(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info("storage: s3", zap.String("bucket", cfg.S3Bucket))
	return s, nil
}

type Local struct {
	dir     string
	baseURL string
}

func NewLocal(dir, baseURL string) *Local {
	return &Local{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (l *Local) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(l.dir, clean), nil
}

func (l *Local) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*Object, error) {
	full, err := l.path(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(full)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, r)
	if err != nil {
		os.Remove(full)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &Object{
		Key:         key,
		URL:         l.baseURL + "/" + strings.TrimPrefix(filepath.ToSlash(key), "/"),
		Size:        written,
		ContentType: contentType,
	}, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	full, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

type S3 struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3(ctx context.Context, cfg *config.Config) (*S3, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.S3PublicURL
	if publicURL == "" && cfg.S3Endpoint != "" {
		publicURL = strings.TrimSuffix(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &S3{client: client, bucket: cfg.S3Bucket, publicURL: strings.TrimSuffix(publicURL, "/")}, nil
}

func (s *S3) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*Object, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to s3: %w", err)
	}
	return &Object{
		Key:         key,
		URL:         s.publicURL + "/" + key,
		Size:        size,
		ContentType: contentType,
	}, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from s3: %w", err)
	}
	return nil
}
