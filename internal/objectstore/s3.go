// Package objectstore provides the S3-backed blob store used for uploaded
// resume text, generated resume content and LaTeX template bodies.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrNotFound is returned when the requested key does not exist.
var ErrNotFound = errors.New("objectstore: not found")

// Store is the object-store contract the pipeline and rendering engine
// depend on.
type Store interface {
	UploadBytes(ctx context.Context, key string, content []byte, contentType string) error
	DownloadText(ctx context.Context, key string) (string, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// Options configure the S3 client.
type Options struct {
	Bucket    string
	Region    string
	Endpoint  string // Optional custom endpoint (MinIO in dev).
	AccessKey string
	SecretKey string
}

// Client is the S3 implementation of Store.
type Client struct {
	s3      *s3.Client
	presign *s3.PresignClient
	bucket  string
	logger  *slog.Logger
}

// New builds an S3 client. Static credentials are used when provided;
// otherwise the default AWS credential chain applies.
func New(ctx context.Context, opts Options, logger *slog.Logger) (*Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("objectstore: load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		s3:      client,
		presign: s3.NewPresignClient(client),
		bucket:  opts.Bucket,
		logger:  logger,
	}, nil
}

// UploadBytes stores content under key with the given MIME type.
func (c *Client) UploadBytes(ctx context.Context, key string, content []byte, contentType string) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("objectstore: upload %s: %w", key, err)
	}
	c.logger.Debug("objectstore: uploaded", "key", key, "bytes", len(content))
	return nil
}

// DownloadText fetches the object at key as UTF-8 text. A missing key maps
// to ErrNotFound so callers can distinguish absence from unavailability.
func (c *Client) DownloadText(ctx context.Context, key string) (string, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("objectstore: download %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("objectstore: read %s: %w", key, err)
	}
	return string(data), nil
}

// PresignGet returns a time-limited download URL for key.
func (c *Client) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("objectstore: presign %s: %w", key, err)
	}
	return req.URL, nil
}

// Delete removes the object at key. Deleting a missing key is not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("objectstore: delete %s: %w", key, err)
	}
	return nil
}
