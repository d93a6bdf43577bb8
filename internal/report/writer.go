// Package report renders analysis reports as JSON, Markdown or console text.
package report

import (
	"io"

	"chart-color-inspector/pkg/models"
)

// Writer outputs an analysis report in some format.
type Writer interface {
	// Write outputs the report and returns the number of bytes written.
	Write(report *models.AnalysisReport) (int, error)
}

// baseWriter holds the shared output destination.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
