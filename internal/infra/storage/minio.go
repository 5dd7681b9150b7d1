// Package storage publishes generated item images to an S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"vocalcart/internal/domain"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	URLExpiry time.Duration
}

// ImageStore uploads item images and hands out presigned GET URLs.
type ImageStore struct {
	client *minio.Client
	bucket string
	region string
	expiry time.Duration
}

func NewImageStore(cfg Config) (*ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}

	return &ImageStore{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		expiry: expiry,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{
			Region: s.region,
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

func (s *ImageStore) Publish(ctx context.Context, itemID string, img *domain.Image) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", fmt.Errorf("empty image for item %s", itemID)
	}

	contentType := img.MIMEType
	if contentType == "" {
		contentType = "image/png"
	}

	key := objectKey(itemID)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(img.Data), int64(len(img.Data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	url, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url.String(), nil
}

// Discard deletes the images of removed items. Every failed key is reported.
func (s *ImageStore) Discard(ctx context.Context, itemIDs ...string) error {
	objectsCh := make(chan minio.ObjectInfo)

	go func() {
		defer close(objectsCh)
		for _, id := range itemIDs {
			select {
			case objectsCh <- minio.ObjectInfo{Key: objectKey(id)}:
			case <-ctx.Done():
				return
			}
		}
	}()

	var errs []error
	for rerr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			errs = append(errs, fmt.Errorf("failed to delete object %s: %w", rerr.ObjectName, rerr.Err))
		}
	}

	return errors.Join(errs...)
}

func objectKey(itemID string) string {
	return "items/" + itemID
}
