package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the part of the S3 client used by S3Lister.
type S3API interface {
	s3.ListObjectsV2APIClient
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// S3Lister lists objects through any S3-compatible endpoint (B2, AWS, MinIO).
type S3Lister struct {
	api      S3API
	bucket   string
	pageSize int32
}

// NewS3Lister wraps an existing S3 API client.
func NewS3Lister(api S3API, bucket string, pageSize int) *S3Lister {
	return &S3Lister{
		api:      api,
		bucket:   bucket,
		pageSize: int32(Config{PageSize: pageSize}.pageSize()),
	}
}

// NewS3Client builds an aws-sdk-go-v2 S3 client from the storage configuration.
func NewS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !hasScheme(endpoint) {
		scheme := "http://"
		if cfg.UseSSL {
			scheme = "https://"
		}
		endpoint = scheme + endpoint
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
		o.HTTPClient = awshttpClient(timeout(cfg))
	}), nil
}

// List returns every valid object under prefix, in listing order.
func (l *S3Lister) List(ctx context.Context, prefix string) ([]Object, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(l.bucket),
		MaxKeys: aws.Int32(l.pageSize),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	var objects []Object
	paginator := s3.NewListObjectsV2Paginator(l.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, listError(err, "list objects page")
		}
		for _, item := range page.Contents {
			obj, err := NewObject(aws.ToString(item.Key), aws.ToInt64(item.Size), aws.ToTime(item.LastModified))
			if err != nil {
				continue
			}
			objects = append(objects, obj)
		}
	}
	return objects, nil
}

// Metadata returns the custom tags of key.
func (l *S3Lister) Metadata(ctx context.Context, key string) (map[string]string, error) {
	out, err := l.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, mapError(err, "head object "+key)
	}
	return normalizeMetadata(out.Metadata), nil
}
