// Package excel is the workbook backend of the tabular I/O contract: it
// reads raw input tables from xlsx files and writes the prepared report
// workbook. The core never touches it.
package excel

import (
	"fmt"
	"io"

	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

// ReadTable reads one worksheet into a raw cell grid. An empty sheet name
// selects the first worksheet. name labels the table in error messages.
func ReadTable(r io.Reader, sheet, name string) (domain.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("failed to open workbook for %q: %w", name, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("failed to read sheet %q of %q: %w", sheet, name, err)
	}
	return domain.RawTable{Name: name, Rows: rows}, nil
}
