package uploads

import (
	"context"
	"log"
	"os"
)

// Uploader persists an image and returns a retrievable URL.
type Uploader interface {
	Put(ctx context.Context, data []byte, folder string) (string, error)
}

type fallbackUploader struct {
	primary  Uploader
	fallback Uploader
}

// WithFallback tries the primary uploader and falls back on any error. The
// caller sees the same return shape either way.
func WithFallback(primary, fallback Uploader) Uploader {
	return &fallbackUploader{primary: primary, fallback: fallback}
}

func (f *fallbackUploader) Put(ctx context.Context, data []byte, folder string) (string, error) {
	url, err := f.primary.Put(ctx, data, folder)
	if err == nil {
		return url, nil
	}
	log.Println("upload: primary store failed, using fallback:", err)
	return f.fallback.Put(ctx, data, folder)
}

// FromEnv builds the uploader chain. With MINIO_ENDPOINT set the object
// store is primary and local disk the fallback; otherwise disk only.
func FromEnv(uploadsDir string) Uploader {
	disk := NewDiskUploader(uploadsDir)

	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		log.Println("upload: MINIO_ENDPOINT not set, storing media on local disk")
		return disk
	}

	store, err := NewMinioUploader(
		endpoint,
		os.Getenv("MINIO_ACCESS_KEY"),
		os.Getenv("MINIO_SECRET_KEY"),
		os.Getenv("MINIO_BUCKET"),
		os.Getenv("MINIO_USE_SSL") == "true",
	)
	if err != nil {
		log.Println("upload: object store unavailable, storing media on local disk:", err)
		return disk
	}
	return WithFallback(store, disk)
}
