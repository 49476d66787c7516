package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/MKhiriev/go-qr-keeper/internal/config"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/models"
)

// s3API is the subset of *s3.Client used by the blob store.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// overridable in tests
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

type s3BlobStore struct {
	client s3API
	bucket string
	prefix string
	logger *logger.Logger
}

// NewS3BlobStore returns a [BlobStore] backed by an S3-compatible bucket.
func NewS3BlobStore(ctx context.Context, cfg config.S3, log *logger.Logger) (BlobStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3BlobStore").Msg("error loading aws config")
		return nil, fmt.Errorf("%w: load aws config: %w", ErrStorageUnavailable, err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3BlobStore(client, cfg.Bucket, cfg.Prefix, log), nil
}

func newS3BlobStore(client s3API, bucket, prefix string, log *logger.Logger) *s3BlobStore {
	return &s3BlobStore{client: client, bucket: bucket, prefix: prefix, logger: log}
}

func (s *s3BlobStore) Put(ctx context.Context, data []byte) (models.BlobReference, error) {
	locator := newLocator()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(locator)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("text/plain"),
	})
	if err != nil {
		return models.BlobReference{}, s.fail("put object", err)
	}

	return models.BlobReference{Locator: locator, Size: int64(len(data))}, nil
}

func (s *s3BlobStore) Get(ctx context.Context, locator string) ([]byte, error) {
	if !validLocator(locator) {
		return nil, ErrBlobNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(locator)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrBlobNotFound
		}
		return nil, s.fail("get object", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, s.fail("read object", err)
	}

	return data, nil
}

func (s *s3BlobStore) Delete(ctx context.Context, locator string) error {
	if !validLocator(locator) {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(locator)),
	})
	if err != nil {
		return s.fail("delete object", err)
	}

	return nil
}

func (s *s3BlobStore) key(locator string) string {
	if s.prefix == "" {
		return locator
	}
	return path.Join(s.prefix, locator)
}

func (s *s3BlobStore) fail(op string, err error) error {
	s.logger.Err(err).Str("func", "s3BlobStore").Str("op", op).Str("bucket", s.bucket).Msg("blob store failure")
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
