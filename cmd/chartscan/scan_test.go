package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chart-color-inspector/pkg/models"
)

// writeChartPNG writes a small screenshot with a purple marker region.
func writeChartPNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x < 2 {
				img.Set(x, y, color.RGBA{142, 39, 162, 255})
			} else {
				img.Set(x, y, color.RGBA{30, 30, 30, 255})
			}
		}
	}

	path := filepath.Join(dir, "chart.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func runScan(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"scan"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestScanCmd(t *testing.T) {
	imgPath := writeChartPNG(t, t.TempDir())
	outDir := t.TempDir()

	output, err := runScan(t, "--color", "purple", "--output", outDir, "--no-history", imgPath)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if !strings.Contains(output, "Purple detection") {
		t.Errorf("expected a purple summary, got:\n%s", output)
	}
	if !strings.Contains(output, "8 pixels (50.00% of image)") {
		t.Errorf("expected half the image matched, got:\n%s", output)
	}

	reports, _ := filepath.Glob(filepath.Join(outDir, "purple_analysis_*.json"))
	if len(reports) != 1 {
		t.Fatalf("expected 1 JSON report, found %v", reports)
	}
	vizFiles, _ := filepath.Glob(filepath.Join(outDir, "purple_detection_*.png"))
	if len(vizFiles) != 1 {
		t.Fatalf("expected 1 visualization, found %v", vizFiles)
	}

	data, err := os.ReadFile(reports[0])
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	var report models.AnalysisReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if report.ColorName != "purple" || report.TotalMatched != 8 {
		t.Errorf("unexpected report: color=%s matched=%d", report.ColorName, report.TotalMatched)
	}
	if report.OutputFiles == nil || report.OutputFiles.Visualization == "" {
		t.Error("expected the report to reference its visualization")
	}
}

func TestScanCmd_AllColors(t *testing.T) {
	imgPath := writeChartPNG(t, t.TempDir())
	outDir := t.TempDir()

	output, err := runScan(t, "--output", outDir, "--no-history", "--no-visualization", imgPath)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if !strings.Contains(output, "analyzed 6 color(s)") {
		t.Errorf("expected all six colors analyzed, got:\n%s", output)
	}

	reports, _ := filepath.Glob(filepath.Join(outDir, "*_analysis_*.json"))
	if len(reports) != 6 {
		t.Errorf("expected 6 reports, found %d", len(reports))
	}
	vizFiles, _ := filepath.Glob(filepath.Join(outDir, "*_detection_*.png"))
	if len(vizFiles) != 0 {
		t.Errorf("expected no visualizations, found %v", vizFiles)
	}
}

func TestScanCmd_MarkdownOutput(t *testing.T) {
	imgPath := writeChartPNG(t, t.TempDir())
	outDir := t.TempDir()

	if _, err := runScan(t, "--color", "purple", "--markdown", "--no-visualization",
		"--output", outDir, "--no-history", imgPath); err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	reports, _ := filepath.Glob(filepath.Join(outDir, "purple_analysis_*.md"))
	if len(reports) != 1 {
		t.Fatalf("expected 1 Markdown report, found %v", reports)
	}
	data, err := os.ReadFile(reports[0])
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if !strings.Contains(string(data), "# Color Analysis Report") {
		t.Errorf("expected a Markdown heading, got:\n%s", data)
	}
}

func TestScanCmd_UnknownColor(t *testing.T) {
	imgPath := writeChartPNG(t, t.TempDir())

	_, err := runScan(t, "--color", "purpel", "--no-history", imgPath)
	if err == nil {
		t.Fatal("expected an error for an unknown color")
	}
	if !strings.Contains(err.Error(), "purple") {
		t.Errorf("expected a suggestion for purple, got: %v", err)
	}
}

func TestScanCmd_MissingImage(t *testing.T) {
	if _, err := runScan(t, "--no-history", filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Error("expected an error for a missing image")
	}
}

func TestScanCmd_InvalidHighlight(t *testing.T) {
	imgPath := writeChartPNG(t, t.TempDir())

	if _, err := runScan(t, "--highlight", "magenta", "--no-history", imgPath); err == nil {
		t.Error("expected an error for a non-hex highlight")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"#FFFF00", color.RGBA{255, 255, 0, 255}, false},
		{"ff00ff", color.RGBA{255, 0, 255, 255}, false},
		{" #00FF00 ", color.RGBA{0, 255, 0, 255}, false},
		{"red", color.RGBA{}, true},
		{"#FFF", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseHexColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseHexColor(%q) expected an error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseHexColor(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseHexColor(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
