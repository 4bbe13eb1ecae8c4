package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/arundhati-c/datatapevalidation/pkg/ev5/report"
)

// reportHeader is the fixed column order of the findings report.
// Downstream consumers parse these columns by name; do not reorder.
var reportHeader = []string{
	"Block", "Line", "Column", "Field", "Value",
	"InvalidType", "ExpectedCodes", "Status",
}

// ReportExporter writes validation findings to CSV.
type ReportExporter struct {
	// IncludeHeader includes a header row with column names.
	IncludeHeader bool
}

// NewReportExporter creates a new findings exporter.
func NewReportExporter(includeHeader bool) *ReportExporter {
	return &ReportExporter{
		IncludeHeader: includeHeader,
	}
}

// Export writes the result's findings to the provided writer in CSV
// format, preserving finding order.
func (e *ReportExporter) Export(ctx context.Context, result report.Result, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if e.IncludeHeader {
		if err := writer.Write(reportHeader); err != nil {
			return fmt.Errorf("failed to write report header: %w", err)
		}
	}

	for i, f := range result.Findings {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		row := []string{
			f.Block,
			strconv.Itoa(f.Line),
			strconv.Itoa(f.Column),
			f.Field,
			f.Value,
			string(f.Kind),
			f.ExpectedCodes,
			f.Status,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write finding %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}
