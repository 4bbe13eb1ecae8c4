package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/arundhati-c/datatapevalidation/pkg/codes"
)

// catalogHeader is the column order of the flat catalog snapshot.
var catalogHeader = []string{"CodeName", "Code", "Description"}

// CatalogExporter writes the valid code catalog in two layouts: a flat
// record snapshot and a dropdown-oriented grid.
type CatalogExporter struct {
	// Comma is the field delimiter; zero value means ','. Set '\t' for
	// TSV output.
	Comma rune
}

// NewCatalogExporter creates a catalog exporter producing CSV.
func NewCatalogExporter() *CatalogExporter {
	return &CatalogExporter{}
}

// ExportSnapshot writes the catalog records as flat CodeName/Code/
// Description rows in input order.
func (e *CatalogExporter) ExportSnapshot(ctx context.Context, records []codes.CatalogRecord, w io.Writer) error {
	writer := e.newWriter(w)
	defer writer.Flush()

	if err := writer.Write(catalogHeader); err != nil {
		return fmt.Errorf("failed to write catalog header: %w", err)
	}

	for i, rec := range records {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := writer.Write([]string{rec.CodeName, rec.Code, rec.Description}); err != nil {
			return fmt.Errorf("failed to write catalog record %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush catalog snapshot: %w", err)
	}
	return nil
}

// ExportGrid writes the index as a dropdown grid: the first row holds
// the sorted field type names, and each following row holds the i-th
// allowed code of every field type, with empty cells where a field type
// has fewer codes than the tallest column. Spreadsheet users point
// dropdown data ranges at the columns directly.
func (e *CatalogExporter) ExportGrid(ctx context.Context, idx codes.Index, w io.Writer) error {
	writer := e.newWriter(w)
	defer writer.Flush()

	fields := idx.FieldTypes()
	if len(fields) == 0 {
		return nil
	}
	if err := writer.Write(fields); err != nil {
		return fmt.Errorf("failed to write grid header: %w", err)
	}

	columns := make([][]string, len(fields))
	maxLen := 0
	for i, field := range fields {
		columns[i] = idx.Allowed(field)
		if len(columns[i]) > maxLen {
			maxLen = len(columns[i])
		}
	}

	row := make([]string, len(fields))
	for i := 0; i < maxLen; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for j, col := range columns {
			if i < len(col) {
				row[j] = col[i]
			} else {
				row[j] = ""
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write grid row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush catalog grid: %w", err)
	}
	return nil
}

func (e *CatalogExporter) newWriter(w io.Writer) *csv.Writer {
	writer := csv.NewWriter(w)
	if e.Comma != 0 {
		writer.Comma = e.Comma
	}
	return writer
}
