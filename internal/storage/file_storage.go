package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// FileImageLoader reads images from the local filesystem. This is the CLI's
// source: traders point the tool at cropped chart screenshots on disk.
type FileImageLoader struct{}

// NewFileImageLoader creates a filesystem image source.
func NewFileImageLoader() ImageSource {
	return &FileImageLoader{}
}

// GetImage opens and decodes the image at path. A missing file or an
// undecodable format is fatal for the run; there is nothing to retry.
func (l *FileImageLoader) GetImage(_ context.Context, path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}
