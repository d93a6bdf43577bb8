package report

import (
	"fmt"
	"io"
	"strings"

	"chart-color-inspector/pkg/models"
)

// ConsoleWriter outputs a human-readable text summary, mirroring what the
// JSON report carries.
type ConsoleWriter struct {
	baseWriter
}

// NewConsoleWriter creates a ConsoleWriter that outputs to the given writer.
func NewConsoleWriter(output io.Writer) *ConsoleWriter {
	return &ConsoleWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report as console text.
func (w *ConsoleWriter) Write(report *models.AnalysisReport) (int, error) {
	var b strings.Builder

	info := report.AnalysisInfo
	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", 60))
	fmt.Fprintf(&b, "%s detection: %s\n", title(report.ColorName), info.ImagePath)
	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", 60))
	fmt.Fprintf(&b, "%s\n", report.Description)
	fmt.Fprintf(&b, "rule: %s\n\n", report.RuleSummary)

	fmt.Fprintf(&b, "image: %dx%d (%d pixels, %d unique colors)\n",
		info.Width, info.Height, info.TotalPixels, info.UniqueColors)

	if report.TotalMatched == 0 {
		fmt.Fprintf(&b, "no %s pixels found\n", report.ColorName)
		return w.output.Write([]byte(b.String()))
	}

	fmt.Fprintf(&b, "matched: %d pixels (%.2f%% of image) across %d distinct colors\n\n",
		report.TotalMatched, report.Percentage, report.MatchedColors)

	fmt.Fprintf(&b, "top %s colors:\n", report.ColorName)
	for i, c := range report.TopColors {
		fmt.Fprintf(&b, "  %2d: RGB(%3d, %3d, %3d) - %7d pixels (%5.2f%%)\n",
			i+1, c.R, c.G, c.B, c.Count, c.Percentage)
	}

	if report.ChannelStats != nil {
		s := report.ChannelStats
		fmt.Fprintf(&b, "\nmatched channel stats: R %.1f±%.1f, G %.1f±%.1f, B %.1f±%.1f\n",
			s.MeanR, s.StdR, s.MeanG, s.StdG, s.MeanB, s.StdB)
	}

	return w.output.Write([]byte(b.String()))
}
