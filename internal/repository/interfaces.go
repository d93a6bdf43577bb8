package repository

import (
	"context"
	"image"

	"chart-color-inspector/pkg/models"
)

// ImageRepository defines the interface for image data access operations
type ImageRepository interface {
	// FetchImage retrieves an image by reference (path, URL or blob URL)
	FetchImage(ctx context.Context, ref string) (image.Image, error)

	// ValidateRef validates if the provided reference is acceptable
	ValidateRef(ref string) error
}

// HistoryRepository stores completed analyses for the history command.
type HistoryRepository interface {
	// SaveAnalysis persists one analysis report
	SaveAnalysis(ctx context.Context, report *models.AnalysisReport) error

	// RecentAnalyses returns up to limit entries, newest first
	RecentAnalyses(ctx context.Context, limit int) ([]models.HistoryEntry, error)

	// Close releases the underlying database
	Close() error
}
