package uploads

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioUploader stores images in an S3-compatible object store.
type MinioUploader struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

func NewMinioUploader(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioUploader, error) {
	if bucket == "" {
		bucket = "sheharfix"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		exists, errBucketExists := client.BucketExists(ctx, bucket)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("minio: ensure bucket %s: %w", bucket, err)
		}
	}

	return &MinioUploader{client: client, endpoint: endpoint, bucket: bucket, useSSL: useSSL}, nil
}

func (m *MinioUploader) Put(ctx context.Context, data []byte, folder string) (string, error) {
	objectName := fmt.Sprintf("%s/%d-%s.png", folder, time.Now().UnixMilli(), uuid.NewString())

	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "image/png"})
	if err != nil {
		return "", fmt.Errorf("minio: put object: %w", err)
	}

	scheme := "http"
	if m.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.endpoint, m.bucket, objectName), nil
}
