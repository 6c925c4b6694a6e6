// Package sheets groups enriched records by destination sheet and shapes
// them into the fixed output schemas of the two report tabs.
package sheets

import (
	"fmt"
	"time"

	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// FixedCostRow is one row of the costos_fijos sheet. Exactly one of the four
// category columns is non-zero per row (all zero for unclassified concepts);
// Retencion is a placeholder for a withholding rule not yet computed and is
// always zero, but it participates in the net sum so adding the rule later
// touches a single spot.
type FixedCostRow struct {
	Fecha              *time.Time
	NumeroFactura      string
	Consecutivo        *int
	CostoFijo          decimal.Decimal
	SeguroIva          decimal.Decimal
	InteresCorriente   decimal.Decimal
	InteresMora        decimal.Decimal
	Retencion          decimal.Decimal
	ValorNetoFacturado decimal.Decimal
	Moneda             string
	Estado             string
	Flete              string
	NotaCredito        bool
}

// MandatoRow is one row of the mandato sheet.
type MandatoRow struct {
	Fecha              *time.Time
	NumeroFactura      string
	Consecutivo        *int
	InteresCorriente   decimal.Decimal
	InteresMoraMandato decimal.Decimal
	ValorNetoFacturado decimal.Decimal
	Moneda             string
	Estado             string
	Periodo            string
}

// Prepared holds the per-sheet row sets of one run.
type Prepared struct {
	CostosFijos []FixedCostRow
	Mandato     []MandatoRow
}

// Prepare distributes enriched records into their destination sheets. Rows
// routed to SheetNone are excluded from every sheet; they remain visible
// only through statistics.
func Prepare(enriched []domain.EnrichedRecord) Prepared {
	var p Prepared
	for _, rec := range enriched {
		switch rec.HojaDestino {
		case domain.SheetCostosFijos:
			p.CostosFijos = append(p.CostosFijos, fixedCostRow(rec))
		case domain.SheetMandato:
			p.Mandato = append(p.Mandato, mandatoRow(rec))
		}
	}
	return p
}

func amount(rec domain.EnrichedRecord) decimal.Decimal {
	if !rec.ValorNetsuite.Valid {
		return decimal.Zero
	}
	return rec.ValorNetsuite.Decimal
}

func fixedCostRow(rec domain.EnrichedRecord) FixedCostRow {
	row := FixedCostRow{
		Fecha:         rec.Fecha,
		NumeroFactura: rec.NumeroFactura,
		Consecutivo:   rec.Consecutivo,
		Moneda:        rec.Moneda,
		Estado:        rec.Estado,
		Flete:         rec.Flete,
		NotaCredito:   rec.Variante == domain.VariantNotasCredito,
	}

	switch rec.Categoria {
	case domain.CategoryCostoFijo:
		row.CostoFijo = amount(rec)
	case domain.CategorySeguroIva:
		row.SeguroIva = amount(rec)
	case domain.CategoryInteresCorriente:
		row.InteresCorriente = amount(rec)
	case domain.CategoryInteresMora:
		row.InteresMora = amount(rec)
	}

	row.ValorNetoFacturado = row.CostoFijo.
		Add(row.SeguroIva).
		Add(row.InteresCorriente).
		Add(row.InteresMora).
		Add(row.Retencion)
	return row
}

func mandatoRow(rec domain.EnrichedRecord) MandatoRow {
	row := MandatoRow{
		Fecha:         rec.Fecha,
		NumeroFactura: rec.NumeroFactura,
		Consecutivo:   rec.Consecutivo,
		Moneda:        rec.Moneda,
		Estado:        rec.Estado,
		Periodo:       PeriodLabel(rec.Fecha),
	}

	switch rec.Categoria {
	case domain.CategoryInteresCorriente:
		row.InteresCorriente = amount(rec)
	case domain.CategoryInteresMora:
		row.InteresMoraMandato = amount(rec)
	}

	row.ValorNetoFacturado = row.InteresCorriente.Add(row.InteresMoraMandato)
	return row
}

var spanishMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// PeriodLabel renders an invoice date as "{mes}-{aa}", e.g. August 2025 →
// "ago-25". A nil date yields the empty string.
func PeriodLabel(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%s-%02d", spanishMonths[int(t.Month())-1], t.Year()%100)
}
