package normalize

import (
	"testing"
	"time"

	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billingMapping() TableMapping {
	return TableMapping{
		Sheet:     "Facturas",
		HeaderRow: 1,
		Columns: map[string]string{
			FieldNumeroFactura:    "Numero de Factura",
			FieldFecha:            "Fecha Emision",
			FieldNit:              "NIT",
			FieldCliente:          "Razon Social",
			FieldEmail:            "Correo",
			FieldEstado:           "Estado",
			FieldFlete:            "Flete",
			FieldCodigoDesembolso: "Codigo Desembolso",
			FieldConcepto:         "Concepto",
		},
	}
}

func accountingMapping() TableMapping {
	return TableMapping{
		Sheet:     "Netsuite",
		HeaderRow: 1,
		Columns: map[string]string{
			FieldNumeroFactura: "Documento",
			FieldMoneda:        "Moneda",
			FieldValorNetsuite: "Valor",
		},
	}
}

func billingTable(rows ...[]string) domain.RawTable {
	header := []string{
		"Numero de Factura", "Fecha Emision", "NIT", "Razon Social", "Correo",
		"Estado", "Flete", "Codigo Desembolso", "Concepto",
	}
	return domain.RawTable{Name: "nuva_facturas", Rows: append([][]string{header}, rows...)}
}

func TestBilling(t *testing.T) {
	t.Run("maps and trims fields", func(t *testing.T) {
		table := billingTable(
			[]string{" fe9133 ", "2025-08-01", "900123456-1", " Importadora SAS ", "pagos@importadora.co", "PAGADA", "SI", "DES-2025-001", " Seguro "},
		)

		got, err := Billing(table, billingMapping(), domain.VariantFacturas)
		require.NoError(t, err)
		require.Len(t, got, 1)

		r := got[0]
		assert.Equal(t, "FE9133", r.NumeroFactura)
		require.NotNil(t, r.Fecha)
		assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), *r.Fecha)
		assert.Equal(t, "Importadora SAS", r.Cliente)
		assert.Equal(t, "Seguro", r.Concepto)
		assert.Equal(t, domain.VariantFacturas, r.Variante)
	})

	t.Run("drops blank and nan invoice numbers", func(t *testing.T) {
		table := billingTable(
			[]string{"", "2025-08-01", "", "", "", "", "", "", ""},
			[]string{"nan", "2025-08-01", "", "", "", "", "", "", ""},
			[]string{"NaN", "2025-08-01", "", "", "", "", "", "", ""},
			[]string{"FE1", "2025-08-01", "", "", "", "", "", "", ""},
		)

		got, err := Billing(table, billingMapping(), domain.VariantFacturas)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "FE1", got[0].NumeroFactura)
	})

	t.Run("unparseable date becomes nil", func(t *testing.T) {
		table := billingTable(
			[]string{"FE1", "sin fecha", "", "", "", "", "", "", ""},
		)

		got, err := Billing(table, billingMapping(), domain.VariantFacturas)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Nil(t, got[0].Fecha)
	})

	t.Run("missing configured column", func(t *testing.T) {
		table := domain.RawTable{
			Name: "nuva_facturas",
			Rows: [][]string{{"Numero de Factura", "Fecha Emision"}},
		}

		_, err := Billing(table, billingMapping(), domain.VariantFacturas)
		var mismatch *SchemaMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "nuva_facturas", mismatch.Table)
	})

	t.Run("empty table yields no rows and no error", func(t *testing.T) {
		got, err := Billing(domain.RawTable{Name: "vacia"}, billingMapping(), domain.VariantFacturas)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("header below the first row", func(t *testing.T) {
		m := billingMapping()
		m.HeaderRow = 3
		header := billingTable().Rows[0]
		table := domain.RawTable{
			Name: "nuva_facturas",
			Rows: [][]string{
				{"Reporte NUVA"},
				{},
				header,
				{"FE2", "2025-01-15", "", "", "", "", "", "", "Mora"},
			},
		}

		got, err := Billing(table, m, domain.VariantFacturas)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "FE2", got[0].NumeroFactura)
	})
}

func TestAccounting(t *testing.T) {
	table := func(rows ...[]string) domain.RawTable {
		header := []string{"Documento", "Moneda", "Valor"}
		return domain.RawTable{Name: "netsuite_facturas", Rows: append([][]string{header}, rows...)}
	}

	t.Run("coerces amounts leniently", func(t *testing.T) {
		got, err := Accounting(table(
			[]string{"FE9133", "cop", "150000"},
			[]string{"FE9134", "USD", "$1,250.50"},
			[]string{"FE9135", "COP", "no disponible"},
			[]string{"FE9136", "COP", "1,250,500.75"},
		), accountingMapping(), domain.VariantFacturas)
		require.NoError(t, err)
		require.Len(t, got, 4)

		assert.Equal(t, "COP", got[0].Moneda)
		require.True(t, got[0].ValorNetsuite.Valid)
		assert.True(t, got[0].ValorNetsuite.Decimal.Equal(decimal.NewFromInt(150000)))

		require.True(t, got[1].ValorNetsuite.Valid)
		assert.True(t, got[1].ValorNetsuite.Decimal.Equal(decimal.RequireFromString("1250.50")))

		// invalid value degrades to null, the row survives
		assert.False(t, got[2].ValorNetsuite.Valid)

		require.True(t, got[3].ValorNetsuite.Valid)
		assert.True(t, got[3].ValorNetsuite.Decimal.Equal(decimal.RequireFromString("1250500.75")))
	})

	t.Run("ambiguous comma amounts degrade to null", func(t *testing.T) {
		// A comma that is not an unambiguous thousands group could be a
		// decimal separator; guessing would record a wrong value.
		got, err := Accounting(table(
			[]string{"FE1", "COP", "1,5"},
			[]string{"FE2", "COP", "150.000,50"},
			[]string{"FE3", "COP", "12,34"},
		), accountingMapping(), domain.VariantFacturas)
		require.NoError(t, err)
		require.Len(t, got, 3)

		for _, r := range got {
			assert.False(t, r.ValorNetsuite.Valid, r.NumeroFactura)
		}
	})

	t.Run("missing value column", func(t *testing.T) {
		bad := domain.RawTable{Name: "netsuite_facturas", Rows: [][]string{{"Documento", "Moneda"}}}
		_, err := Accounting(bad, accountingMapping(), domain.VariantFacturas)
		var mismatch *SchemaMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "Valor", mismatch.Column)
	})
}

func TestMappingsFor(t *testing.T) {
	m := Mappings{
		NuvaFacturas:         TableMapping{Sheet: "nuva-f"},
		NuvaNotasCredito:     TableMapping{Sheet: "nuva-nc"},
		NetsuiteFacturas:     TableMapping{Sheet: "ns-f"},
		NetsuiteNotasCredito: TableMapping{Sheet: "ns-nc"},
	}

	assert.Equal(t, "nuva-f", m.For(domain.SourceNuva, domain.VariantFacturas).Sheet)
	assert.Equal(t, "nuva-nc", m.For(domain.SourceNuva, domain.VariantNotasCredito).Sheet)
	assert.Equal(t, "ns-f", m.For(domain.SourceNetsuite, domain.VariantFacturas).Sheet)
	assert.Equal(t, "ns-nc", m.For(domain.SourceNetsuite, domain.VariantNotasCredito).Sheet)
}

func TestMappingsValidate(t *testing.T) {
	valid := Mappings{
		NuvaFacturas:         billingMapping(),
		NuvaNotasCredito:     billingMapping(),
		NetsuiteFacturas:     accountingMapping(),
		NetsuiteNotasCredito: accountingMapping(),
	}

	t.Run("complete document", func(t *testing.T) {
		m := valid
		assert.NoError(t, m.Validate())
	})

	t.Run("missing target field", func(t *testing.T) {
		m := valid
		cols := map[string]string{}
		for k, v := range billingMapping().Columns {
			cols[k] = v
		}
		delete(cols, FieldConcepto)
		m.NuvaFacturas = TableMapping{Sheet: "Facturas", HeaderRow: 1, Columns: cols}

		var cfgErr *ConfigError
		require.ErrorAs(t, m.Validate(), &cfgErr)
		assert.Equal(t, "nuva_facturas", cfgErr.Key)
	})

	t.Run("empty mapping", func(t *testing.T) {
		m := valid
		m.NetsuiteNotasCredito = TableMapping{}
		assert.Error(t, m.Validate())
	})
}
