package export

import (
	"fmt"
	"strings"
	"time"
)

// Column describes one report column. Width is a relative weight used by the
// PDF layout; zero means 1.
type Column struct {
	Key   string
	Label string
	Width float64
}

// Table is the tabular content of a report.
type Table struct {
	Title       string
	Columns     []Column
	Rows        []map[string]string
	GeneratedAt time.Time
	// Highlight marks rows that should stand out, e.g. out of stock items.
	Highlight func(row map[string]string) bool
}

// Renderer encodes a Table into a downloadable document.
type Renderer interface {
	Render(table Table) ([]byte, error)
	ContentType() string
	Extension() string
}

// Supported formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// ForFormat returns the renderer registered for format.
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatCSV:
		return NewCSVExporter(), nil
	case FormatPDF:
		return NewPDFExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func (t Table) validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("report requires at least one column")
	}
	return nil
}

func (t Table) labels() []string {
	labels := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		labels[i] = col.Label
		if labels[i] == "" {
			labels[i] = col.Key
		}
	}
	return labels
}
