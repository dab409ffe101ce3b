package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Upload is an in-memory file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ObjectStore stores uploaded files and returns a retrievable URL.
type ObjectStore interface {
	Store(ctx context.Context, upload Upload, keyPrefix string) (string, error)
}

// S3Store stores uploads in an S3 bucket under random keys.
type S3Store struct {
	client *s3.Client
	bucket string
	region string
}

// Ensure S3Store implements ObjectStore
var _ ObjectStore = (*S3Store)(nil)

// NewS3Store creates an S3-backed object store using the default credential chain.
func NewS3Store(ctx context.Context, bucket, region string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

// Store uploads the file under keyPrefix with a generated name and returns
// the public object URL.
func (s *S3Store) Store(ctx context.Context, upload Upload, keyPrefix string) (string, error) {
	key := fmt.Sprintf("%s/%s%s", keyPrefix, uuid.New().String(), path.Ext(upload.Filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(upload.Data),
		ContentType: aws.String(upload.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
