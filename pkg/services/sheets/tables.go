package sheets

import (
	"time"

	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
)

// Headers are kept free of diacritics for downstream compatibility.
var (
	fixedCostColumns = []string{
		"Fecha", "Numero Factura", "Consecutivo",
		"Costo Fijo", "Seguro + Iva", "Interes Corriente", "Interes Mora",
		"Retencion", "Valor Neto Facturado",
		"Moneda", "Estado", "Flete", "Nota Credito",
	}
	mandatoColumns = []string{
		"Fecha", "Numero Factura", "Consecutivo",
		"Interes Corriente", "Interes Mora Mandato", "Valor Neto Facturado",
		"Moneda", "Estado", "Periodo",
	}
)

// Tables flattens the prepared rows into writer-ready sheet tables, one per
// destination sheet that received at least one row.
func (p Prepared) Tables() map[string]domain.SheetTable {
	out := make(map[string]domain.SheetTable)

	if len(p.CostosFijos) > 0 {
		t := domain.SheetTable{Name: string(domain.SheetCostosFijos), Columns: fixedCostColumns}
		for _, r := range p.CostosFijos {
			t.Rows = append(t.Rows, []any{
				formatDate(r.Fecha), r.NumeroFactura, consecutivoCell(r.Consecutivo),
				r.CostoFijo.InexactFloat64(), r.SeguroIva.InexactFloat64(),
				r.InteresCorriente.InexactFloat64(), r.InteresMora.InexactFloat64(),
				r.Retencion.InexactFloat64(), r.ValorNetoFacturado.InexactFloat64(),
				r.Moneda, r.Estado, r.Flete, r.NotaCredito,
			})
		}
		out[t.Name] = t
	}

	if len(p.Mandato) > 0 {
		t := domain.SheetTable{Name: string(domain.SheetMandato), Columns: mandatoColumns}
		for _, r := range p.Mandato {
			t.Rows = append(t.Rows, []any{
				formatDate(r.Fecha), r.NumeroFactura, consecutivoCell(r.Consecutivo),
				r.InteresCorriente.InexactFloat64(), r.InteresMoraMandato.InexactFloat64(),
				r.ValorNetoFacturado.InexactFloat64(),
				r.Moneda, r.Estado, r.Periodo,
			})
		}
		out[t.Name] = t
	}

	return out
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func consecutivoCell(n *int) any {
	if n == nil {
		return ""
	}
	return *n
}
