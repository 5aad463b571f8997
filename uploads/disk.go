package uploads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DiskUploader writes images under a local root and returns URLs that the
// /uploads static route serves.
type DiskUploader struct {
	root string
}

func NewDiskUploader(root string) *DiskUploader {
	return &DiskUploader{root: root}
}

func (d *DiskUploader) Put(ctx context.Context, data []byte, folder string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(d.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("disk upload: create folder: %w", err)
	}

	filename := fmt.Sprintf("%d-%s.png", time.Now().UnixMilli(), uuid.NewString())
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("disk upload: write file: %w", err)
	}
	return "/uploads/" + folder + "/" + filename, nil
}
