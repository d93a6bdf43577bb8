package classifier

import (
	"context"
	"image"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// coreClassifier implements PixelClassifier.
type coreClassifier struct{}

// NewPixelClassifier creates a new pixel classifier.
func NewPixelClassifier() PixelClassifier {
	return &coreClassifier{}
}

// Classify scans the image sequentially, top-left to bottom-right. The scan
// order is what makes tie-breaking by first-seen order reproducible across
// runs.
func (cc *coreClassifier) Classify(img image.Image, rule ColorRule, options ClassifyOptions) *Result {
	start := time.Now()
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	result := &Result{
		Rule:      rule,
		Width:     width,
		Height:    height,
		Histogram: NewHistogram(),
		Timestamp: start,
	}

	var mask *Mask
	if options.ComputeMask {
		mask = NewMask(width, height)
		result.Mask = mask
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := pixelAt(img, x, y)
			if !rule.Match(p) {
				continue
			}
			result.Histogram.Add(p)
			if mask != nil {
				mask.Set(x-bounds.Min.X, y-bounds.Min.Y)
			}
		}
	}

	result.TotalMatched = result.Histogram.Total()
	result.MatchedColors = result.Histogram.Len()
	if width*height > 0 {
		result.Percentage = float64(result.TotalMatched) / float64(width*height) * 100
	}

	totalPixels := float64(width * height)
	entries := result.Histogram.TopN(options.TopN)
	result.Top = make([]ScoredColor, 0, len(entries))
	for _, entry := range entries {
		var pct float64
		if totalPixels > 0 {
			pct = float64(entry.Count) / totalPixels * 100
		}
		result.Top = append(result.Top, ScoredColor{
			Pixel:      entry.Pixel,
			Count:      entry.Count,
			Percentage: pct,
		})
	}

	if options.ComputeChannelStats && result.TotalMatched > 0 {
		result.ChannelStats = computeChannelStats(result.Histogram)
	}

	result.ProcessingTimeSec = time.Since(start).Seconds()
	return result
}

// ClassifyAll fans out one goroutine per rule. The image is read-only and
// every scan builds its own histogram, so no synchronization beyond the
// errgroup is needed.
func (cc *coreClassifier) ClassifyAll(ctx context.Context, img image.Image, rules []ColorRule, options ClassifyOptions) ([]*Result, error) {
	results := make([]*Result, len(rules))

	g, ctx := errgroup.WithContext(ctx)
	for i, rule := range rules {
		i, rule := i, rule
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = cc.Classify(img, rule, options)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// computeChannelStats summarizes matched pixel channels, weighting each
// distinct triple by its occurrence count.
func computeChannelStats(h *Histogram) *ChannelStats {
	entries := h.Entries()
	rs := make([]float64, 0, len(entries))
	gs := make([]float64, 0, len(entries))
	bs := make([]float64, 0, len(entries))
	weights := make([]float64, 0, len(entries))

	for _, entry := range entries {
		rs = append(rs, float64(entry.Pixel.R))
		gs = append(gs, float64(entry.Pixel.G))
		bs = append(bs, float64(entry.Pixel.B))
		weights = append(weights, float64(entry.Count))
	}

	stats := &ChannelStats{
		MeanR: stat.Mean(rs, weights),
		MeanG: stat.Mean(gs, weights),
		MeanB: stat.Mean(bs, weights),
	}
	// The unbiased estimator divides by total-1; a single matched pixel
	// would yield NaN, which is not representable in JSON.
	if h.Total() > 1 {
		stats.StdR = stat.StdDev(rs, weights)
		stats.StdG = stat.StdDev(gs, weights)
		stats.StdB = stat.StdDev(bs, weights)
	}
	return stats
}
