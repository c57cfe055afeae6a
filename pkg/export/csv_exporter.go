package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"
)

var errEmptyReport = errors.New("report has no sections")

func errMissingHeaders(section string) error {
	return fmt.Errorf("section %q requires at least one header", section)
}

// CSVExporter renders a Report as CSV, one block per section separated by a blank line.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// ContentType is the MIME type of the rendered output.
func (e *CSVExporter) ContentType() string { return "text/csv" }

// Extension is the file suffix of the rendered output.
func (e *CSVExporter) Extension() string { return "csv" }

// Render produces CSV encoded bytes for the report.
func (e *CSVExporter) Render(report Report) ([]byte, error) {
	if err := report.validate(); err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if report.Title != "" {
		if err := writer.Write([]string{report.Title, report.GeneratedAt.UTC().Format(time.RFC3339)}); err != nil {
			return nil, fmt.Errorf("write csv title: %w", err)
		}
	}
	for i, section := range report.Sections {
		if i > 0 || report.Title != "" {
			if err := writer.Write([]string{""}); err != nil {
				return nil, fmt.Errorf("write csv separator: %w", err)
			}
		}
		if err := writer.Write([]string{section.Name}); err != nil {
			return nil, fmt.Errorf("write csv section: %w", err)
		}
		if err := writer.Write(section.Headers); err != nil {
			return nil, fmt.Errorf("write csv headers: %w", err)
		}
		for _, row := range section.Rows {
			record := make([]string, len(section.Headers))
			copy(record, row)
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
