package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTable is a cell grid exactly as read from an input workbook, before any
// header resolution or typing. Name identifies the table in error messages.
type RawTable struct {
	Name string
	Rows [][]string
}

func (t RawTable) Empty() bool {
	return len(t.Rows) == 0
}

// AccountingRecord is one normalized row of the ERP (Netsuite) export.
type AccountingRecord struct {
	NumeroFactura string
	Moneda        string
	ValorNetsuite decimal.NullDecimal
	Variante      Variant
}

// BillingRecord is one normalized row of the billing (NUVA) export.
type BillingRecord struct {
	NumeroFactura    string
	Fecha            *time.Time
	Nit              string
	Cliente          string
	Email            string
	Estado           string
	Flete            string
	CodigoDesembolso string
	Concepto         string
	Variante         Variant
}

// EnrichedRecord is the reconciled row: a billing row, the accounting fields
// matched to it (zero-valued with Cruzada=false when no match exists), and
// the attributes derived from its invoice number and concept text.
type EnrichedRecord struct {
	BillingRecord

	Moneda        string
	ValorNetsuite decimal.NullDecimal
	Cruzada       bool

	Prefijo        string
	Consecutivo    *int
	Categoria      Category
	ColumnaDestino string
	TipoFactura    InvoiceType
	HojaDestino    Sheet
}
