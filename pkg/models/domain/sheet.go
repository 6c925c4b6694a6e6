package domain

// SheetTable is a prepared destination sheet in writer-ready form. Columns
// hold the header row (diacritic-free, see the sheet preparer) and every row
// has exactly len(Columns) cells.
type SheetTable struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// ColumnIndex returns the position of a header, or -1 when absent.
func (t SheetTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
