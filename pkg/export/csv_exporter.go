package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Column describes one exported field.
type Column struct {
	Key   string
	Title string
	// Weight is the column's share of the PDF table width; zero counts as 1.
	Weight float64
	// Align is a gofpdf alignment, "L", "C" or "R"; empty means left.
	Align string
}

func (c Column) heading() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Key
}

// Dataset is tabular export content. Rows are keyed by Column.Key; missing
// keys render as empty cells.
type Dataset struct {
	Columns []Column
	Rows    []map[string]string
}

// CSVExporter renders datasets as RFC 4180 CSV.
type CSVExporter struct {
	// BOM prefixes the output with a UTF-8 byte order mark so spreadsheet
	// tools detect the encoding of non-ASCII titles.
	BOM bool
}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV bytes: one heading row, then one record per row.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Columns) == 0 {
		return nil, fmt.Errorf("csv export needs at least one column")
	}

	buf := &bytes.Buffer{}
	if e.BOM {
		buf.WriteString("\ufeff")
	}
	writer := csv.NewWriter(buf)

	record := make([]string, len(data.Columns))
	for i, col := range data.Columns {
		record[i] = col.heading()
	}
	if err := writer.Write(record); err != nil {
		return nil, fmt.Errorf("write csv heading: %w", err)
	}
	for n, row := range data.Rows {
		for i, col := range data.Columns {
			record[i] = row[col.Key]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", n, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
