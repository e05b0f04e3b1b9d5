// Package store persists generated audio artifacts to S3 and returns the
// public URL the voice platform will stream from.
//
// Writes are write-once: every upload gets a fresh UUID key under a fixed
// prefix, keys are never reused, and nothing deletes stored audio.
package store

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// DefaultPrefix is the logical prefix all generated audio lives under.
const DefaultPrefix = "matue-tts/tts"

// Uploader writes a byte buffer and returns its public URL.
type Uploader interface {
	// Upload performs one write under a freshly generated key and returns
	// the deterministic public URL. Failure implies no object was created;
	// there is no retry and no cleanup.
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// PutObjectAPI is the slice of the S3 client the store uses.
// Tests inject a fake; production wires *s3.Client.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 implements Uploader against an S3 bucket with public-read objects.
type S3 struct {
	api    PutObjectAPI
	bucket string
	region string
	prefix string
	logger *slog.Logger
}

// Option is a functional option for configuring the store.
type Option func(*S3)

// WithClient sets the S3 API client.
func WithClient(api PutObjectAPI) Option {
	return func(s *S3) {
		s.api = api
	}
}

// WithBucket sets the bucket name.
func WithBucket(bucket string) Option {
	return func(s *S3) {
		s.bucket = bucket
	}
}

// WithRegion sets the bucket region used to build public URLs.
func WithRegion(region string) Option {
	return func(s *S3) {
		s.region = region
	}
}

// WithPrefix overrides the logical key prefix.
func WithPrefix(prefix string) Option {
	return func(s *S3) {
		s.prefix = prefix
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *S3) {
		s.logger = logger
	}
}

// NewS3 creates a new artifact store.
func NewS3(opts ...Option) (*S3, error) {
	s := &S3{
		prefix: DefaultPrefix,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.api == nil {
		return nil, ErrNoClient
	}
	if s.bucket == "" {
		return nil, ErrNoBucket
	}
	if s.region == "" {
		return nil, ErrNoRegion
	}

	s.logger = s.logger.With("component", "store.s3")
	return s, nil
}

// Upload writes data under a generated key and returns the public URL.
func (s *S3) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	start := time.Now()

	key := fmt.Sprintf("%s/%s.mp3", s.prefix, uuid.NewString())

	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", &StoreError{Key: key, Err: err}
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)

	s.logger.Debug("uploaded artifact",
		"key", key,
		"bytes", len(data),
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return url, nil
}

// Verify S3 implements Uploader at compile time.
var _ Uploader = (*S3)(nil)
