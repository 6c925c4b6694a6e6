// Package stats computes the summary snapshot over an enriched record set.
package stats

import (
	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Aggregate summarizes the enriched rows. multiplied is the join fan-out
// count reported by reconciliation; it is carried through so the snapshot is
// self-contained. Pure aggregation: tolerates empty input, never fails.
func Aggregate(enriched []domain.EnrichedRecord, multiplied int) domain.Statistics {
	s := domain.Statistics{
		TotalFacturas:        len(enriched),
		SumaPorMoneda:        make(map[string]decimal.Decimal),
		FacturasPorTipo:      make(map[domain.InvoiceType]int),
		FacturasPorCategoria: make(map[domain.Category]int),
		FacturasPorHoja:      make(map[domain.Sheet]int),
		FilasMultiplicadas:   multiplied,
	}

	for _, rec := range enriched {
		s.FacturasPorTipo[rec.TipoFactura]++
		s.FacturasPorCategoria[rec.Categoria]++

		if rec.HojaDestino == domain.SheetNone {
			s.FilasExcluidas++
		} else {
			s.FacturasPorHoja[rec.HojaDestino]++
		}

		if rec.ValorNetsuite.Valid {
			moneda := rec.Moneda
			if moneda == "" {
				moneda = "SIN_MONEDA"
			}
			s.SumaPorMoneda[moneda] = s.SumaPorMoneda[moneda].Add(rec.ValorNetsuite.Decimal)
		} else {
			s.SinValor++
		}

		if rec.Categoria == domain.CategoryUnclassified {
			s.SinClasificar++
		}
		if !rec.Cruzada {
			s.SinCruce++
		}
	}
	return s
}
