package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"autoClaims/internal/config"
	"autoClaims/pkg/e"
)

type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type S3Backend struct {
	client S3API
	bucket string
}

// NewS3Backend loads AWS config with static credentials. A custom endpoint
// (LocalStack, MinIO gateway) switches the client to path-style addressing.
func NewS3Backend(ctx context.Context, cfg config.BlobConfig) (*S3Backend, error) {
	awsConf, err := awscfg.LoadDefaultConfig(ctx,
		awscfg.WithRegion(cfg.Region),
		awscfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConf, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			host, secure := splitEndpoint(cfg.Endpoint, cfg.UseSSL)
			scheme := "http://"
			if secure {
				scheme = "https://"
			}
			o.BaseEndpoint = aws.String(scheme + host)
			o.UsePathStyle = true
		}
	})

	return NewS3BackendWithClient(client, cfg.Bucket), nil
}

func NewS3BackendWithClient(client S3API, bucket string) *S3Backend {
	return &S3Backend{client: client, bucket: bucket}
}

func (b *S3Backend) Exists(ctx context.Context, key string) (bool, error) {
	_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	if isAPIError(err, "NotFound", "NoSuchKey") {
		return false, nil
	}
	return false, fmt.Errorf("head object: %w", err)
}

// Put uses a conditional write so a racing upload to the same key fails
// instead of replacing the object.
func (b *S3Backend) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		if isAPIError(err, "PreconditionFailed", "ConditionalRequestConflict") {
			return fmt.Errorf("put object %s: %w", key, e.ErrConflict)
		}
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (b *S3Backend) Ping(ctx context.Context) error {
	if _, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(b.bucket)}); err != nil {
		return fmt.Errorf("head bucket: %w", err)
	}
	return nil
}

func isAPIError(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, c := range codes {
		if apiErr.ErrorCode() == c {
			return true
		}
	}
	return false
}
