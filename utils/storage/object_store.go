package storage

import (
	"context"
	"fmt"
	"fooddonation-backend/models"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the subset of the S3 client used by S3Store
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads communication attachments to a single bucket.
type S3Store struct {
	client  PutObjectAPI
	bucket  string
	baseURL string
}

// NewS3Store returns nil when no bucket is configured.
func NewS3Store(ctx context.Context, cfg *models.Config) (*S3Store, error) {
	if cfg.S3Bucket == "" {
		return nil, nil
	}

	region := cfg.S3Region
	if region == "" {
		region = cfg.AWSRegion
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		awsCfg.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		))
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// MinIO and other S3 compatible endpoints
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3StoreWithAPI(client, cfg.S3Bucket, publicBaseURL(cfg, region)), nil
}

// NewS3StoreWithAPI wraps an existing client
func NewS3StoreWithAPI(api PutObjectAPI, bucket, baseURL string) *S3Store {
	return &S3Store{client: api, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
}

func publicBaseURL(cfg *models.Config, region string) string {
	switch {
	case cfg.S3PublicBaseURL != "":
		return cfg.S3PublicBaseURL
	case cfg.S3Endpoint != "":
		return strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, region)
	}
}

// Put uploads an object and returns the URL it is served from.
func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.baseURL + "/" + key, nil
}
