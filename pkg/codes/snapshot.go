package codes

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadSnapshot reads catalog records from a snapshot CSV previously
// written by the catalog exporter (CodeName, Code, Description). It
// lets validation run against a cached catalog when the API is
// unreachable or a pinned catalog version is wanted.
func LoadSnapshot(path string) ([]CatalogRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog snapshot %q: %w", path, err)
	}
	defer f.Close()

	records, err := ReadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog snapshot %q: %w", path, err)
	}
	return records, nil
}

// ReadSnapshot reads catalog records from CSV. A header row is detected
// by its CodeName cell and skipped. Rows with fewer than two columns
// are rejected; a missing description is tolerated.
func ReadSnapshot(r io.Reader) ([]CatalogRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var records []CatalogRecord
	row := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row++

		if row == 1 && len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[0]), "CodeName") {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("row %d: want at least CodeName and Code columns, got %d", row, len(fields))
		}

		rec := CatalogRecord{
			CodeName: fields[0],
			Code:     fields[1],
		}
		if len(fields) > 2 {
			rec.Description = fields[2]
		}
		records = append(records, rec)
	}

	return records, nil
}
