package consolidate

import (
	"context"
	"testing"

	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
	"github.com/fin-tools/ledger-atlas/pkg/services/normalize"
	"github.com/fin-tools/ledger-atlas/pkg/services/reconcile"
	"github.com/fin-tools/ledger-atlas/pkg/services/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMappings(t *testing.T) *normalize.Mappings {
	t.Helper()
	billing := normalize.TableMapping{
		Sheet:     "Facturas",
		HeaderRow: 1,
		Columns: map[string]string{
			normalize.FieldNumeroFactura:    "Factura",
			normalize.FieldFecha:            "Fecha",
			normalize.FieldNit:              "NIT",
			normalize.FieldCliente:          "Cliente",
			normalize.FieldEmail:            "Email",
			normalize.FieldEstado:           "Estado",
			normalize.FieldFlete:            "Flete",
			normalize.FieldCodigoDesembolso: "Desembolso",
			normalize.FieldConcepto:         "Concepto",
		},
	}
	accounting := normalize.TableMapping{
		Sheet:     "Netsuite",
		HeaderRow: 1,
		Columns: map[string]string{
			normalize.FieldNumeroFactura: "Documento",
			normalize.FieldMoneda:        "Moneda",
			normalize.FieldValorNetsuite: "Valor",
		},
	}
	m := &normalize.Mappings{
		NuvaFacturas:         billing,
		NuvaNotasCredito:     billing,
		NetsuiteFacturas:     accounting,
		NetsuiteNotasCredito: accounting,
	}
	require.NoError(t, m.Validate())
	return m
}

func testRuleset(t *testing.T) *rules.Ruleset {
	t.Helper()
	rs := &rules.Ruleset{
		ConceptCategories: []rules.CategoryRule{
			{Name: domain.CategorySeguroIva, Keywords: []string{"seguro"}},
			{Name: domain.CategoryInteresMora, Keywords: []string{"mora"}},
		},
		InvoiceTypes: []rules.Route{
			{Prefix: "FE", TipoFactura: domain.InvoiceTypeFactura, HojaDestino: domain.SheetCostosFijos},
			{Prefix: "NCFE", TipoFactura: domain.InvoiceTypeNotaCredito, HojaDestino: domain.SheetCostosFijos},
		},
	}
	require.NoError(t, rs.Validate())
	return rs
}

func billingTable(rows ...[]string) domain.RawTable {
	header := []string{"Factura", "Fecha", "NIT", "Cliente", "Email", "Estado", "Flete", "Desembolso", "Concepto"}
	return domain.RawTable{Name: "nuva_facturas", Rows: append([][]string{header}, rows...)}
}

func accountingTable(rows ...[]string) domain.RawTable {
	header := []string{"Documento", "Moneda", "Valor"}
	return domain.RawTable{Name: "netsuite_facturas", Rows: append([][]string{header}, rows...)}
}

// End-to-end run over the known scenario: one NUVA row classified as
// seguro_iva joins one Netsuite row carrying COP 150000.
func TestRun_Scenario(t *testing.T) {
	p := NewProcessor(testMappings(t), testRuleset(t))

	result, err := p.Run(context.Background(), Inputs{
		NuvaFacturas: billingTable(
			[]string{"FE9133", "2025-08-01", "900123456-1", "Importadora SAS", "pagos@imp.co", "PAGADA", "SI", "DES-001", "Seguro"},
		),
		NetsuiteFacturas: accountingTable(
			[]string{"FE9133", "COP", "150000"},
		),
	})
	require.NoError(t, err)

	require.Len(t, result.Enriched, 1)
	rec := result.Enriched[0]
	assert.Equal(t, domain.CategorySeguroIva, rec.Categoria)
	assert.Equal(t, "FE", rec.Prefijo)
	require.NotNil(t, rec.Consecutivo)
	assert.Equal(t, 9133, *rec.Consecutivo)
	assert.Equal(t, "COP", rec.Moneda)

	table, ok := result.Sheets[string(domain.SheetCostosFijos)]
	require.True(t, ok)
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, 150000.0, row[table.ColumnIndex("Seguro + Iva")])
	assert.Equal(t, 0.0, row[table.ColumnIndex("Costo Fijo")])
	assert.Equal(t, 0.0, row[table.ColumnIndex("Interes Corriente")])
	assert.Equal(t, 0.0, row[table.ColumnIndex("Interes Mora")])
	assert.Equal(t, 150000.0, row[table.ColumnIndex("Valor Neto Facturado")])

	assert.Equal(t, 1, result.Stats.TotalFacturas)
	assert.True(t, result.Stats.SumaPorMoneda["COP"].IntPart() == 150000)
}

func TestRun_CreditMemoVariantFlowsThrough(t *testing.T) {
	p := NewProcessor(testMappings(t), testRuleset(t))

	result, err := p.Run(context.Background(), Inputs{
		NuvaFacturas: billingTable(
			[]string{"FE1", "2025-08-01", "", "", "", "", "", "", "Seguro"},
		),
		NuvaNotasCredito: domain.RawTable{
			Name: "nuva_notas_credito",
			Rows: append(billingTable().Rows,
				[]string{"NCFE001", "2025-08-10", "", "", "", "", "", "", "Seguro"}),
		},
		NetsuiteFacturas: accountingTable(
			[]string{"FE1", "COP", "100"},
			[]string{"NCFE001", "COP", "-100"},
		),
	})
	require.NoError(t, err)
	require.Len(t, result.Enriched, 2)

	table := result.Sheets[string(domain.SheetCostosFijos)]
	require.Len(t, table.Rows, 2)
	nc := table.ColumnIndex("Nota Credito")
	assert.Equal(t, false, table.Rows[0][nc])
	assert.Equal(t, true, table.Rows[1][nc])
	assert.Equal(t, 1, result.Stats.FacturasPorTipo[domain.InvoiceTypeNotaCredito])
}

func TestRun_SchemaMismatchAborts(t *testing.T) {
	p := NewProcessor(testMappings(t), testRuleset(t))

	_, err := p.Run(context.Background(), Inputs{
		NuvaFacturas: domain.RawTable{
			Name: "nuva_facturas",
			Rows: [][]string{{"Factura", "Fecha"}},
		},
	})

	var mismatch *normalize.SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "nuva_facturas", mismatch.Table)
}

func TestRun_NoInputDataAborts(t *testing.T) {
	p := NewProcessor(testMappings(t), testRuleset(t))

	_, err := p.Run(context.Background(), Inputs{})
	require.ErrorIs(t, err, reconcile.ErrNoInputData)
}

func TestRun_UnmappedPrefixCountedNotSheeted(t *testing.T) {
	p := NewProcessor(testMappings(t), testRuleset(t))

	result, err := p.Run(context.Background(), Inputs{
		NuvaFacturas: billingTable(
			[]string{"FE1", "2025-08-01", "", "", "", "", "", "", "Seguro"},
			[]string{"ZZ9", "2025-08-01", "", "", "", "", "", "", "Seguro"},
		),
		NetsuiteFacturas: accountingTable(
			[]string{"FE1", "COP", "100"},
		),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.TotalFacturas)
	assert.Equal(t, 1, result.Stats.FilasExcluidas)
	table := result.Sheets[string(domain.SheetCostosFijos)]
	assert.Len(t, table.Rows, 1)
}

func TestRun_IsIdempotent(t *testing.T) {
	p := NewProcessor(testMappings(t), testRuleset(t))
	in := Inputs{
		NuvaFacturas: billingTable(
			[]string{"FE1", "2025-08-01", "", "", "", "", "", "", "Seguro"},
			[]string{"FE2", "2025-08-02", "", "", "", "", "", "", "mora"},
		),
		NetsuiteFacturas: accountingTable(
			[]string{"FE1", "COP", "100"},
		),
	}

	first, err := p.Run(context.Background(), in)
	require.NoError(t, err)
	second, err := p.Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.Enriched, second.Enriched)
	assert.Equal(t, first.Stats, second.Stats)
	assert.Equal(t, first.Sheets, second.Sheets)
}
