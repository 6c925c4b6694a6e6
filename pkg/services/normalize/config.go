// Package normalize turns raw input tables into typed records using a
// declared column mapping per {system, variant} input.
package normalize

import (
	"fmt"

	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
	"github.com/spf13/viper"
)

// ConfigError reports a malformed or incomplete column-mapping document.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid column mapping %q: %s", e.Key, e.Reason)
}

// Billing target fields, i.e. the keys a NUVA mapping must declare.
const (
	FieldNumeroFactura    = "numero_factura"
	FieldFecha            = "fecha"
	FieldNit              = "nit"
	FieldCliente          = "cliente"
	FieldEmail            = "email"
	FieldEstado           = "estado"
	FieldFlete            = "flete"
	FieldCodigoDesembolso = "codigo_desembolso"
	FieldConcepto         = "concepto"
)

// Accounting target fields beyond the invoice number.
const (
	FieldMoneda        = "moneda"
	FieldValorNetsuite = "valor_netsuite"
)

func billingFields() []string {
	return []string{
		FieldNumeroFactura, FieldFecha, FieldNit, FieldCliente, FieldEmail,
		FieldEstado, FieldFlete, FieldCodigoDesembolso, FieldConcepto,
	}
}

func accountingFields() []string {
	return []string{FieldNumeroFactura, FieldMoneda, FieldValorNetsuite}
}

// TableMapping describes how one input table is read: which workbook sheet
// holds it, which row is the header (1-based), and the source column header
// backing each target field.
type TableMapping struct {
	Sheet     string            `mapstructure:"sheet"`
	HeaderRow int               `mapstructure:"header_row"`
	Columns   map[string]string `mapstructure:"columns"`
}

// Mappings is the full column-mapping document: one entry per
// {system}_{variant} input.
type Mappings struct {
	NuvaFacturas         TableMapping `mapstructure:"nuva_facturas"`
	NuvaNotasCredito     TableMapping `mapstructure:"nuva_notas_credito"`
	NetsuiteFacturas     TableMapping `mapstructure:"netsuite_facturas"`
	NetsuiteNotasCredito TableMapping `mapstructure:"netsuite_notas_credito"`
}

// For returns the mapping for a system/variant pair.
func (m *Mappings) For(system domain.Source, variant domain.Variant) TableMapping {
	switch {
	case system == domain.SourceNuva && variant == domain.VariantFacturas:
		return m.NuvaFacturas
	case system == domain.SourceNuva && variant == domain.VariantNotasCredito:
		return m.NuvaNotasCredito
	case system == domain.SourceNetsuite && variant == domain.VariantFacturas:
		return m.NetsuiteFacturas
	default:
		return m.NetsuiteNotasCredito
	}
}

// Validate ensures every mapping declares all target fields for its system.
func (m *Mappings) Validate() error {
	checks := []struct {
		key     string
		mapping TableMapping
		fields  []string
	}{
		{"nuva_facturas", m.NuvaFacturas, billingFields()},
		{"nuva_notas_credito", m.NuvaNotasCredito, billingFields()},
		{"netsuite_facturas", m.NetsuiteFacturas, accountingFields()},
		{"netsuite_notas_credito", m.NetsuiteNotasCredito, accountingFields()},
	}
	for _, c := range checks {
		if len(c.mapping.Columns) == 0 {
			return &ConfigError{Key: c.key, Reason: "no columns declared"}
		}
		if c.mapping.HeaderRow < 0 {
			return &ConfigError{Key: c.key, Reason: "header_row must be positive"}
		}
		for _, f := range c.fields {
			src, ok := c.mapping.Columns[f]
			if !ok || src == "" {
				return &ConfigError{Key: c.key, Reason: fmt.Sprintf("missing source column for field %q", f)}
			}
		}
	}
	return nil
}

// Load reads and validates the column-mapping document at path.
func Load(path string) (*Mappings, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read column mapping file: %w", err)
	}

	var m Mappings
	if err := v.Unmarshal(&m); err != nil {
		return nil, fmt.Errorf("failed to parse column mapping file: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
