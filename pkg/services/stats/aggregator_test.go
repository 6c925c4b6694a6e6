package stats

import (
	"testing"

	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(tipo domain.InvoiceType, cat domain.Category, hoja domain.Sheet, moneda string, valor *int64, cruzada bool) domain.EnrichedRecord {
	r := domain.EnrichedRecord{
		Moneda:      moneda,
		Cruzada:     cruzada,
		Categoria:   cat,
		TipoFactura: tipo,
		HojaDestino: hoja,
	}
	if valor != nil {
		r.ValorNetsuite = decimal.NullDecimal{Decimal: decimal.NewFromInt(*valor), Valid: true}
	}
	return r
}

func val(n int64) *int64 { return &n }

func TestAggregate(t *testing.T) {
	enriched := []domain.EnrichedRecord{
		rec(domain.InvoiceTypeFactura, domain.CategorySeguroIva, domain.SheetCostosFijos, "COP", val(150000), true),
		rec(domain.InvoiceTypeFactura, domain.CategoryCostoFijo, domain.SheetCostosFijos, "COP", val(50000), true),
		rec(domain.InvoiceTypeFacturaMandato, domain.CategoryInteresMora, domain.SheetMandato, "USD", val(25), true),
		rec(domain.InvoiceTypeNotaCredito, domain.CategoryUnclassified, domain.SheetCostosFijos, "", nil, false),
		rec(domain.InvoiceTypeUnknown, domain.CategorySeguroIva, domain.SheetNone, "COP", val(1000), true),
	}

	s := Aggregate(enriched, 2)

	assert.Equal(t, 5, s.TotalFacturas)
	assert.Equal(t, 2, s.FilasMultiplicadas)

	require.Contains(t, s.SumaPorMoneda, "COP")
	assert.True(t, s.SumaPorMoneda["COP"].Equal(decimal.NewFromInt(201000)))
	assert.True(t, s.SumaPorMoneda["USD"].Equal(decimal.NewFromInt(25)))

	assert.Equal(t, 2, s.FacturasPorTipo[domain.InvoiceTypeFactura])
	assert.Equal(t, 1, s.FacturasPorTipo[domain.InvoiceTypeUnknown])
	assert.Equal(t, 2, s.FacturasPorCategoria[domain.CategorySeguroIva])
	assert.Equal(t, 1, s.SinValor)
	assert.Equal(t, 1, s.SinClasificar)
	assert.Equal(t, 1, s.SinCruce)

	// NoSheet rows are excluded from the per-sheet counts but never lost:
	// per-sheet counts plus the excluded count equal the total.
	assert.Equal(t, 1, s.FilasExcluidas)
	assert.NotContains(t, s.FacturasPorHoja, domain.SheetNone)
	counted := s.FilasExcluidas
	for _, n := range s.FacturasPorHoja {
		counted += n
	}
	assert.Equal(t, s.TotalFacturas, counted)
}

func TestAggregate_EmptyInput(t *testing.T) {
	s := Aggregate(nil, 0)
	assert.Zero(t, s.TotalFacturas)
	assert.Empty(t, s.SumaPorMoneda)
	assert.Zero(t, s.FilasExcluidas)
}
