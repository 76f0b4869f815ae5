package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
)

// LoadCSV reads a ticket export in CSV form.
func LoadCSV(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Exports sometimes carry ragged rows; cell access tolerates short ones.
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromRows(rows)
}
