package visualizer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"chart-color-inspector/internal/classifier"
)

// Options controls the side-by-side rendering.
type Options struct {
	// HighlightColor replaces matched pixels in the right panel.
	HighlightColor color.RGBA
	// Gap is the spacing between panels and around the border, in pixels.
	Gap int
	// HeaderHeight reserves room for the panel titles.
	HeaderHeight int
}

// DefaultOptions returns the default rendering options: bright yellow
// highlight, the same scheme the original chart inspections used.
func DefaultOptions() Options {
	return Options{
		HighlightColor: color.RGBA{R: 255, G: 255, B: 0, A: 255},
		Gap:            16,
		HeaderHeight:   28,
	}
}

// Visualizer renders classification results for human review.
type Visualizer interface {
	// RenderSideBySide draws the original image next to a copy with the
	// matched pixels recolored.
	RenderSideBySide(img image.Image, result *classifier.Result, options Options) (image.Image, error)

	// SavePNG renders and writes the visualization to path.
	SavePNG(path string, img image.Image, result *classifier.Result, options Options) error
}

type ggVisualizer struct{}

// New creates a visualizer backed by the gg drawing library.
func New() Visualizer {
	return &ggVisualizer{}
}

func (v *ggVisualizer) RenderSideBySide(img image.Image, result *classifier.Result, options Options) (image.Image, error) {
	if result.Mask == nil {
		return nil, fmt.Errorf("result has no highlight mask; classify with ComputeMask enabled")
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("cannot visualize an empty image")
	}

	gap := options.Gap
	header := options.HeaderHeight
	canvasW := width*2 + gap*3
	canvasH := height + header + gap*2

	dc := gg.NewContext(canvasW, canvasH)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Left panel: the original.
	dc.DrawImage(img, gap, header+gap)

	// Right panel: matched pixels recolored.
	highlighted := buildHighlighted(img, result.Mask, options.HighlightColor)
	dc.DrawImage(highlighted, width+gap*2, header+gap)

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored("Original", float64(gap+width/2), float64(header)/2, 0.5, 0.5)
	title := fmt.Sprintf("%s: %d pixels (%.2f%%)", result.Rule.Name, result.TotalMatched, result.Percentage)
	dc.DrawStringAnchored(title, float64(width+gap*2+width/2), float64(header)/2, 0.5, 0.5)

	return dc.Image(), nil
}

func (v *ggVisualizer) SavePNG(path string, img image.Image, result *classifier.Result, options Options) error {
	rendered, err := v.RenderSideBySide(img, result, options)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, rendered); err != nil {
		return fmt.Errorf("failed to save visualization: %w", err)
	}
	return nil
}

// buildHighlighted copies the image and recolors every masked pixel.
func buildHighlighted(img image.Image, mask *classifier.Mask, highlight color.RGBA) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if mask.At(x-bounds.Min.X, y-bounds.Min.Y) {
				out.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, highlight)
				continue
			}
			out.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return out
}
