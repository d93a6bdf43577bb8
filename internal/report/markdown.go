package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"chart-color-inspector/pkg/models"
)

// MarkdownWriter outputs reports in Markdown format, for sharing an
// inspection result in notes or pull requests.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *models.AnalysisReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Color Analysis Report")
	md.PlainText("")

	info := report.AnalysisInfo
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Image", info.ImagePath},
			{"Analyzed at", info.Timestamp.Format("2006-01-02 15:04:05 MST")},
			{"Dimensions", fmt.Sprintf("%dx%d", info.Width, info.Height)},
			{"Total pixels", strconv.Itoa(info.TotalPixels)},
			{"Unique colors", strconv.Itoa(info.UniqueColors)},
		},
	})

	md.H2(fmt.Sprintf("%s detection", title(report.ColorName)))
	md.PlainText(report.Description)
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightNone, report.RuleSummary)
	md.PlainText("")
	md.BulletList(
		fmt.Sprintf("Matched pixels: %d (%.2f%% of image)", report.TotalMatched, report.Percentage),
		fmt.Sprintf("Distinct matched colors: %d", report.MatchedColors),
	)

	if len(report.TopColors) > 0 {
		md.H2("Top colors")
		rows := make([][]string, 0, len(report.TopColors))
		for i, c := range report.TopColors {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				fmt.Sprintf("RGB(%d, %d, %d)", c.R, c.G, c.B),
				strconv.Itoa(c.Count),
				fmt.Sprintf("%.2f%%", c.Percentage),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"#", "Color", "Pixels", "Share"},
			Rows:   rows,
		})
	}

	if len(report.Palette) > 0 {
		md.H2("Image palette")
		md.PlainText(strings.Join(report.Palette, " "))
	}

	return len(md.String()), md.Build()
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
