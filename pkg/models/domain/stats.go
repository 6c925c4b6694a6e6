package domain

import "github.com/shopspring/decimal"

// Statistics is the summary snapshot computed over a full enriched set.
// FilasExcluidas counts rows routed to SheetNone: they appear in no output
// sheet, so the count is surfaced here rather than buried in FacturasPorHoja.
// FilasMultiplicadas counts rows produced beyond the first accounting match
// of a billing row (join fan-out).
type Statistics struct {
	TotalFacturas        int                        `json:"total_facturas"`
	SumaPorMoneda        map[string]decimal.Decimal `json:"suma_por_moneda"`
	FacturasPorTipo      map[InvoiceType]int        `json:"facturas_por_tipo"`
	FacturasPorCategoria map[Category]int           `json:"facturas_por_categoria"`
	FacturasPorHoja      map[Sheet]int              `json:"facturas_por_hoja"`
	SinValor             int                        `json:"sin_valor"`
	SinClasificar        int                        `json:"sin_clasificar"`
	SinCruce             int                        `json:"sin_cruce"`
	FilasExcluidas       int                        `json:"filas_excluidas"`
	FilasMultiplicadas   int                        `json:"filas_multiplicadas"`
}
