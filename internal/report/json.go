package report

import (
	"encoding/json"
	"io"

	"chart-color-inspector/pkg/models"
)

// JSONWriter outputs reports as indented JSON, the machine-readable format
// downstream trading scripts consume.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report as JSON.
func (w *JSONWriter) Write(report *models.AnalysisReport) (int, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	return w.output.Write(data)
}
