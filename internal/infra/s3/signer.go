package s3

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// Signer issues short-lived presigned URLs for a single bucket. Gallery
// objects are never served through the API itself.
type Signer struct {
	client *minio.Client
	bucket string
}

func NewSigner(client *minio.Client, bucket string) *Signer {
	return &Signer{client: client, bucket: bucket}
}

func (s *Signer) SignedGetURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("s3 client is nil")
	}
	if objectKey == "" {
		return "", fmt.Errorf("object key is required")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign get %q: %w", objectKey, err)
	}

	return u.String(), nil
}

func (s *Signer) SignedPutURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("s3 client is nil")
	}
	if objectKey == "" {
		return "", fmt.Errorf("object key is required")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	u, err := s.client.PresignedPutObject(ctx, s.bucket, objectKey, ttl)
	if err != nil {
		return "", fmt.Errorf("presign put %q: %w", objectKey, err)
	}

	return u.String(), nil
}
