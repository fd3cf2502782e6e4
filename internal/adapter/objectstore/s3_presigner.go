package objectstore

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/rl1809/order-fulfillment/internal/config"
	"github.com/rl1809/order-fulfillment/internal/port"
)

// S3Presigner issues presigned PUT URLs for item images.
type S3Presigner struct {
	presign *s3.PresignClient
	bucket  string
	ttl     time.Duration
}

func NewS3Presigner(client *s3.Client, bucket string, ttl time.Duration) *S3Presigner {
	return &S3Presigner{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		ttl:     ttl,
	}
}

// NewS3Client builds a client from static keys when they are configured and
// from the default AWS credential chain otherwise. A custom endpoint allows
// S3-compatible stores such as MinIO.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	if cfg.AccessKey != "" {
		return s3.New(s3.Options{
			Region:       cfg.Region,
			Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
			BaseEndpoint: endpoint(cfg.Endpoint),
			UsePathStyle: cfg.UsePathStyle,
		}), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = endpoint(cfg.Endpoint)
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

func endpoint(raw string) *string {
	if raw == "" {
		return nil
	}
	return aws.String(raw)
}

func (p *S3Presigner) PresignUpload(ctx context.Context, objectKey string) (port.UploadAuthorization, error) {
	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		return port.UploadAuthorization{}, fmt.Errorf("presign upload of %s: %w", objectKey, err)
	}

	return port.UploadAuthorization{
		URL:       req.URL,
		Method:    req.Method,
		ExpiresIn: p.ttl,
	}, nil
}
