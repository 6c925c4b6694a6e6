package excel

import (
	"fmt"
	"io"
	"sort"

	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Resumen"

// WriteWorkbook renders the prepared sheet tables plus a summary tab and
// writes the resulting xlsx to w. Sheet order is deterministic (sorted by
// name, summary last).
func WriteWorkbook(w io.Writer, tables map[string]domain.SheetTable, s domain.Statistics) error {
	f := excelize.NewFile()
	defer f.Close()

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := writeTable(f, tables[name]); err != nil {
			return err
		}
	}
	if err := writeSummary(f, s); err != nil {
		return err
	}

	// drop excelize's default sheet unless a table claimed the name
	if _, ok := tables["Sheet1"]; !ok {
		_ = f.DeleteSheet("Sheet1")
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, t domain.SheetTable) error {
	if _, err := f.NewSheet(t.Name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", t.Name, err)
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", t.Name, err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(t.Name, cell, &r); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+1, t.Name, err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, s domain.Statistics) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	rows := [][]any{
		{"Total facturas", s.TotalFacturas},
		{"Sin valor", s.SinValor},
		{"Sin clasificar", s.SinClasificar},
		{"Sin cruce", s.SinCruce},
		{"Filas excluidas (sin hoja)", s.FilasExcluidas},
		{"Filas multiplicadas", s.FilasMultiplicadas},
	}

	currencies := make([]string, 0, len(s.SumaPorMoneda))
	for m := range s.SumaPorMoneda {
		currencies = append(currencies, m)
	}
	sort.Strings(currencies)
	for _, m := range currencies {
		rows = append(rows, []any{fmt.Sprintf("Total %s", m), s.SumaPorMoneda[m].InexactFloat64()})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(summarySheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}
	return nil
}
