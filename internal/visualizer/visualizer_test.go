package visualizer

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"chart-color-inspector/internal/classifier"
)

func blueAndGrayImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if x < 2 {
				img.Set(x, y, color.RGBA{0, 0, 255, 255})
			} else {
				img.Set(x, y, color.RGBA{128, 128, 128, 255})
			}
		}
	}
	return img
}

func classifyBlue(t *testing.T, img image.Image) *classifier.Result {
	t.Helper()
	rule, ok := classifier.RuleByName("blue")
	if !ok {
		t.Fatal("rule blue not found")
	}
	return classifier.NewPixelClassifier().Classify(img, rule, classifier.DefaultClassifyOptions())
}

func TestRenderSideBySide_Dimensions(t *testing.T) {
	img := blueAndGrayImage()
	result := classifyBlue(t, img)

	opts := DefaultOptions()
	rendered, err := New().RenderSideBySide(img, result, opts)
	if err != nil {
		t.Fatalf("RenderSideBySide failed: %v", err)
	}

	bounds := rendered.Bounds()
	wantW := 4*2 + opts.Gap*3
	wantH := 2 + opts.HeaderHeight + opts.Gap*2
	if bounds.Dx() != wantW || bounds.Dy() != wantH {
		t.Errorf("canvas = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), wantW, wantH)
	}
}

func TestRenderSideBySide_HighlightsMatchedPixels(t *testing.T) {
	img := blueAndGrayImage()
	result := classifyBlue(t, img)

	opts := DefaultOptions()
	rendered, err := New().RenderSideBySide(img, result, opts)
	if err != nil {
		t.Fatalf("RenderSideBySide failed: %v", err)
	}

	// Right panel origin in canvas coordinates.
	panelX := 4 + opts.Gap*2
	panelY := opts.HeaderHeight + opts.Gap

	r, g, b, _ := rendered.At(panelX, panelY).RGBA()
	if uint8(r>>8) != 255 || uint8(g>>8) != 255 || uint8(b>>8) != 0 {
		t.Errorf("matched pixel = (%d, %d, %d), want highlight (255, 255, 0)",
			uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}

	r, g, b, _ = rendered.At(panelX+3, panelY).RGBA()
	if uint8(r>>8) != 128 || uint8(g>>8) != 128 || uint8(b>>8) != 128 {
		t.Errorf("unmatched pixel = (%d, %d, %d), want original gray",
			uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
}

func TestRenderSideBySide_CustomHighlight(t *testing.T) {
	img := blueAndGrayImage()
	result := classifyBlue(t, img)

	opts := DefaultOptions()
	opts.HighlightColor = color.RGBA{255, 0, 255, 255}
	rendered, err := New().RenderSideBySide(img, result, opts)
	if err != nil {
		t.Fatalf("RenderSideBySide failed: %v", err)
	}

	panelX := 4 + opts.Gap*2
	panelY := opts.HeaderHeight + opts.Gap
	r, g, b, _ := rendered.At(panelX, panelY).RGBA()
	if uint8(r>>8) != 255 || uint8(g>>8) != 0 || uint8(b>>8) != 255 {
		t.Errorf("matched pixel = (%d, %d, %d), want custom highlight (255, 0, 255)",
			uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
}

func TestRenderSideBySide_NoMask(t *testing.T) {
	img := blueAndGrayImage()
	rule, _ := classifier.RuleByName("blue")
	result := classifier.NewPixelClassifier().Classify(img, rule, classifier.FastClassifyOptions())

	if _, err := New().RenderSideBySide(img, result, DefaultOptions()); err == nil {
		t.Error("expected an error for a result without a mask")
	}
}

func TestRenderSideBySide_EmptyImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	result := classifyBlue(t, img)

	if _, err := New().RenderSideBySide(img, result, DefaultOptions()); err == nil {
		t.Error("expected an error for an empty image")
	}
}

func TestSavePNG(t *testing.T) {
	img := blueAndGrayImage()
	result := classifyBlue(t, img)

	path := filepath.Join(t.TempDir(), "blue_detection.png")
	if err := New().SavePNG(path, img, result, DefaultOptions()); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected a non-empty PNG")
	}
}
