package repository

import (
	"context"
	"image"
	"strings"

	"chart-color-inspector/internal/storage"
)

// sourceImageRepository implements ImageRepository over any image source.
type sourceImageRepository struct {
	source storage.ImageSource
}

// NewImageRepository creates a repository backed by the given image source.
func NewImageRepository(source storage.ImageSource) ImageRepository {
	return &sourceImageRepository{source: source}
}

// FetchImage retrieves an image by reference.
func (r *sourceImageRepository) FetchImage(ctx context.Context, ref string) (image.Image, error) {
	if err := r.ValidateRef(ref); err != nil {
		return nil, err
	}
	return r.source.GetImage(ctx, ref)
}

// ValidateRef validates if the provided reference is acceptable.
func (r *sourceImageRepository) ValidateRef(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return ErrInvalidImageRef
	}
	return nil
}
