package sentimento

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SpreadsheetContentType is the media type of an XLSX workbook.
const SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// IsSpreadsheet reports whether name has the .xlsx extension.
func IsSpreadsheet(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}

// ReadSpreadsheet parses the first worksheet of an XLSX workbook with the
// same column rules as ReadDataset. Lines are worksheet row numbers; rows
// with no cells at all are skipped.
func ReadSpreadsheet(r io.Reader, opts ...DatasetOpt) (*Dataset, error) {
	base := datasetOpts(opts)

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyDataset
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	records := make([]record, 0, len(rows))
	for i, cells := range rows {
		if blankCells(cells) {
			continue
		}
		records = append(records, record{line: i + 1, fields: cells})
	}
	return buildDataset(records, base)
}

func blankCells(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
