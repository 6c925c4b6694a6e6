package domain

// Source identifies which back-office system produced an input table.
type Source string

const (
	SourceNetsuite Source = "netsuite"
	SourceNuva     Source = "nuva"
)

// Variant distinguishes a system's primary export from its credit-memo export.
type Variant string

const (
	VariantFacturas     Variant = "facturas"
	VariantNotasCredito Variant = "notas_credito"
)

// Category is the financial classification assigned to a row's concept text.
type Category string

const (
	CategoryCostoFijo        Category = "costo_fijo"
	CategorySeguroIva        Category = "seguro_iva"
	CategoryInteresCorriente Category = "interes_corriente"
	CategoryInteresMora      Category = "interes_mora"
	CategoryUnclassified     Category = "unclassified"
)

// KnownCategories lists every classifiable category, i.e. every Category a
// rule set may declare. CategoryUnclassified is the fallback, never declared.
func KnownCategories() []Category {
	return []Category{
		CategoryCostoFijo,
		CategorySeguroIva,
		CategoryInteresCorriente,
		CategoryInteresMora,
	}
}

// InvoiceType is the document type an invoice-number prefix denotes.
type InvoiceType string

const (
	InvoiceTypeFactura            InvoiceType = "factura"
	InvoiceTypeFacturaMandato     InvoiceType = "factura_mandato"
	InvoiceTypeNotaCredito        InvoiceType = "nota_credito"
	InvoiceTypeNotaCreditoMandato InvoiceType = "nota_credito_mandato"
	InvoiceTypeUnknown            InvoiceType = "Unknown"
)

func KnownInvoiceTypes() []InvoiceType {
	return []InvoiceType{
		InvoiceTypeFactura,
		InvoiceTypeFacturaMandato,
		InvoiceTypeNotaCredito,
		InvoiceTypeNotaCreditoMandato,
	}
}

// Sheet names a destination report tab. SheetNone marks rows whose prefix is
// not routed anywhere; such rows appear in statistics but in no output sheet.
type Sheet string

const (
	SheetCostosFijos Sheet = "costos_fijos"
	SheetMandato     Sheet = "mandato"
	SheetNone        Sheet = "NoSheet"
)

func KnownSheets() []Sheet {
	return []Sheet{SheetCostosFijos, SheetMandato}
}

// DestinationColumn returns the monetary column a category's value lands in.
// The mapping is exhaustive over Category; anything else is "Unclassified".
func (c Category) DestinationColumn() string {
	switch c {
	case CategoryCostoFijo:
		return "Costo Fijo"
	case CategorySeguroIva:
		return "Seguro + Iva"
	case CategoryInteresCorriente:
		return "Interes Corriente"
	case CategoryInteresMora:
		return "Interes Mora"
	default:
		return "Unclassified"
	}
}
