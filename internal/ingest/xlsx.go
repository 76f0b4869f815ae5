package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads a ticket export from the first sheet of a spreadsheet,
// honoring the same header contract as the CSV loader.
func LoadXLSX(path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	return fromRows(rows)
}
