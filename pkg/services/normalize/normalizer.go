package normalize

import (
	"fmt"
	"strings"

	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
)

// SchemaMismatchError reports a configured source column that the actual
// input table does not have. It aborts the whole run.
type SchemaMismatchError struct {
	Table  string
	Column string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("table %q has no column %q", e.Table, e.Column)
}

// Billing normalizes a raw NUVA table into billing records. Rows whose
// invoice number is blank or the literal "nan" are dropped. An empty table
// yields no records and no error; a header missing a configured column is a
// SchemaMismatchError.
func Billing(table domain.RawTable, m TableMapping, variant domain.Variant) ([]domain.BillingRecord, error) {
	idx, rows, err := resolveHeader(table, m, billingFields())
	if err != nil {
		return nil, err
	}

	var out []domain.BillingRecord
	for _, row := range rows {
		num := invoiceNumber(cell(row, idx[FieldNumeroFactura]))
		if num == "" {
			continue
		}
		out = append(out, domain.BillingRecord{
			NumeroFactura:    num,
			Fecha:            parseDate(cell(row, idx[FieldFecha])),
			Nit:              strings.TrimSpace(cell(row, idx[FieldNit])),
			Cliente:          strings.TrimSpace(cell(row, idx[FieldCliente])),
			Email:            strings.TrimSpace(cell(row, idx[FieldEmail])),
			Estado:           strings.TrimSpace(cell(row, idx[FieldEstado])),
			Flete:            strings.TrimSpace(cell(row, idx[FieldFlete])),
			CodigoDesembolso: strings.TrimSpace(cell(row, idx[FieldCodigoDesembolso])),
			Concepto:         strings.TrimSpace(cell(row, idx[FieldConcepto])),
			Variante:         variant,
		})
	}
	return out, nil
}

// Accounting normalizes a raw Netsuite table into accounting records, with
// the same dropping and error rules as Billing.
func Accounting(table domain.RawTable, m TableMapping, variant domain.Variant) ([]domain.AccountingRecord, error) {
	idx, rows, err := resolveHeader(table, m, accountingFields())
	if err != nil {
		return nil, err
	}

	var out []domain.AccountingRecord
	for _, row := range rows {
		num := invoiceNumber(cell(row, idx[FieldNumeroFactura]))
		if num == "" {
			continue
		}
		out = append(out, domain.AccountingRecord{
			NumeroFactura: num,
			Moneda:        strings.ToUpper(strings.TrimSpace(cell(row, idx[FieldMoneda]))),
			ValorNetsuite: parseAmount(cell(row, idx[FieldValorNetsuite])),
			Variante:      variant,
		})
	}
	return out, nil
}

// resolveHeader locates the header row and maps each target field to its
// column index. The remaining rows are the data rows.
func resolveHeader(table domain.RawTable, m TableMapping, fields []string) (map[string]int, [][]string, error) {
	if table.Empty() {
		return nil, nil, nil
	}

	headerRow := m.HeaderRow
	if headerRow < 1 {
		headerRow = 1
	}
	if headerRow > len(table.Rows) {
		return nil, nil, &SchemaMismatchError{Table: table.Name, Column: m.Columns[fields[0]]}
	}

	header := table.Rows[headerRow-1]
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.TrimSpace(h)] = i
	}

	idx := make(map[string]int, len(fields))
	for _, f := range fields {
		src := m.Columns[f]
		col, ok := byName[src]
		if !ok {
			return nil, nil, &SchemaMismatchError{Table: table.Name, Column: src}
		}
		idx[f] = col
	}
	return idx, table.Rows[headerRow:], nil
}

// invoiceNumber uppercases and trims the key field; "nan" (any case) marks a
// cell pandas-style exports leave behind for missing values.
func invoiceNumber(cell string) string {
	num := strings.ToUpper(strings.TrimSpace(cell))
	if num == "NAN" {
		return ""
	}
	return num
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
