// Package s3 implements the backends.Backend interface for AWS S3.
package s3

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"go.uber.org/zap"

	"github.com/silolabs/silo/backends"
)

// BackendType identifies this adapter in errors, logs and metrics.
const BackendType = "s3"

// DefaultPresignExpiry is the lifetime of presigned URLs when none is
// configured.
const DefaultPresignExpiry = time.Hour

// Config holds the settings needed to reach an S3 bucket.
type Config struct {
	Bucket        string
	Region        string
	AccessKey     string
	SecretKey     string
	Endpoint      string // custom endpoint, e.g. for MinIO
	DisableSSL    bool
	PresignExpiry time.Duration
}

// Adapter implements backends.Backend for AWS S3.
type Adapter struct {
	client        *s3.S3
	uploader      *s3manager.Uploader
	bucket        string
	presignExpiry time.Duration
	logger        *zap.Logger
}

// NewAdapter creates an S3 adapter and verifies access to the bucket.
func NewAdapter(cfg Config, logger *zap.Logger) (*Adapter, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket name is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.DisableSSL {
		awsConfig.DisableSSL = aws.Bool(true)
	}

	// Custom endpoints (MinIO and friends) need path-style addressing.
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := s3.New(sess)

	if _, err := client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(cfg.Bucket),
	}); err != nil {
		return nil, fmt.Errorf("failed to access S3 bucket %s: %w", cfg.Bucket, err)
	}

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}

	return &Adapter{
		client:        client,
		uploader:      s3manager.NewUploaderWithClient(client),
		bucket:        cfg.Bucket,
		presignExpiry: expiry,
		logger:        logger,
	}, nil
}

// URL returns a presigned GET URL for the object at path.
func (a *Adapter) URL(ctx context.Context, path string) (string, error) {
	req, _ := a.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(path),
	})

	url, err := req.Presign(a.presignExpiry)
	if err != nil {
		return "", a.backendErr("presign", path, err)
	}
	return url, nil
}

// Close releases any resources used by the S3 adapter.
func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) backendErr(op, path string, err error) error {
	return &backends.BackendError{Backend: BackendType, Op: op, Path: path, Err: err}
}

// isNotFound reports whether an S3 error indicates a missing object.
func isNotFound(err error) bool {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return true
		}
	}
	return false
}
