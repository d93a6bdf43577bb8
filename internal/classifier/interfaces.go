package classifier

import (
	"context"
	"image"
)

// PixelClassifier defines the main interface for pixel classification.
type PixelClassifier interface {
	// Classify scans every pixel of the image once, evaluates the rule and
	// aggregates matching triples into a histogram.
	Classify(img image.Image, rule ColorRule, options ClassifyOptions) *Result

	// ClassifyAll runs Classify for each rule over the same image. Rule
	// scans are independent, so they run concurrently; each individual scan
	// stays sequential to keep first-seen ordering deterministic.
	ClassifyAll(ctx context.Context, img image.Image, rules []ColorRule, options ClassifyOptions) ([]*Result, error)
}
