// Package reconcile joins the two systems' combined record sets by invoice
// number and enriches every resulting row with its derived attributes.
package reconcile

import (
	"context"
	"errors"

	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
	"github.com/fin-tools/ledger-atlas/pkg/services/invoiceid"
	"github.com/fin-tools/ledger-atlas/pkg/services/rules"
	"github.com/rs/zerolog"
)

// ErrNoInputData means neither source system supplied any rows; the run
// cannot produce anything and is aborted.
var ErrNoInputData = errors.New("no input data: both source systems are empty")

// CombineBilling concatenates a system's primary and credit-memo rows.
// Either side may be empty; the operation never fails.
func CombineBilling(facturas, notasCredito []domain.BillingRecord) []domain.BillingRecord {
	if len(facturas) == 0 {
		return notasCredito
	}
	if len(notasCredito) == 0 {
		return facturas
	}
	out := make([]domain.BillingRecord, 0, len(facturas)+len(notasCredito))
	out = append(out, facturas...)
	return append(out, notasCredito...)
}

// CombineAccounting is CombineBilling for the accounting side.
func CombineAccounting(facturas, notasCredito []domain.AccountingRecord) []domain.AccountingRecord {
	if len(facturas) == 0 {
		return notasCredito
	}
	if len(notasCredito) == 0 {
		return facturas
	}
	out := make([]domain.AccountingRecord, 0, len(facturas)+len(notasCredito))
	out = append(out, facturas...)
	return append(out, notasCredito...)
}

// Engine reconciles billing rows against accounting rows under one rule set.
type Engine struct {
	rules    *rules.Ruleset
	prefixes []string
}

func NewEngine(rs *rules.Ruleset) *Engine {
	return &Engine{rules: rs, prefixes: rs.OrderedPrefixes()}
}

// Reconcile left-joins billing (the driving set) against accounting on exact
// invoice-number equality and enriches every resulting row. Billing rows are
// never dropped; accounting rows without a billing counterpart are. When one
// side is empty the other passes through as a degraded partial result, which
// is logged, not failed. Duplicate accounting matches fan out: the second
// return value counts the rows produced beyond each billing row's first
// match.
func (e *Engine) Reconcile(ctx context.Context, billing []domain.BillingRecord, accounting []domain.AccountingRecord) ([]domain.EnrichedRecord, int, error) {
	logger := zerolog.Ctx(ctx)

	switch {
	case len(billing) == 0 && len(accounting) == 0:
		return nil, 0, ErrNoInputData
	case len(accounting) == 0:
		logger.Warn().Int("filas", len(billing)).
			Msg("partial reconciliation: no accounting rows, billing passes through unmatched")
		out := make([]domain.EnrichedRecord, 0, len(billing))
		for _, b := range billing {
			out = append(out, e.enrichBilling(b, domain.AccountingRecord{}, false))
		}
		return out, 0, nil
	case len(billing) == 0:
		logger.Warn().Int("filas", len(accounting)).
			Msg("partial reconciliation: no billing rows, accounting passes through")
		out := make([]domain.EnrichedRecord, 0, len(accounting))
		for _, a := range accounting {
			out = append(out, e.enrichAccountingOnly(a))
		}
		return out, 0, nil
	}

	byNumber := make(map[string][]domain.AccountingRecord, len(accounting))
	for _, a := range accounting {
		byNumber[a.NumeroFactura] = append(byNumber[a.NumeroFactura], a)
	}

	var out []domain.EnrichedRecord
	multiplied := 0
	for _, b := range billing {
		matches := byNumber[b.NumeroFactura]
		if len(matches) == 0 {
			out = append(out, e.enrichBilling(b, domain.AccountingRecord{}, false))
			continue
		}
		if len(matches) > 1 {
			multiplied += len(matches) - 1
			logger.Warn().Str("numero_factura", b.NumeroFactura).Int("coincidencias", len(matches)).
				Msg("duplicate accounting rows for invoice, row fans out")
		}
		for _, a := range matches {
			out = append(out, e.enrichBilling(b, a, true))
		}
	}
	return out, multiplied, nil
}

func (e *Engine) enrichBilling(b domain.BillingRecord, a domain.AccountingRecord, matched bool) domain.EnrichedRecord {
	rec := domain.EnrichedRecord{BillingRecord: b, Cruzada: matched}
	if matched {
		rec.Moneda = a.Moneda
		rec.ValorNetsuite = a.ValorNetsuite
	}
	e.derive(&rec)
	return rec
}

// enrichAccountingOnly projects an unmatched accounting row into the
// enriched shape so a billing-less run still surfaces its data. The row was
// projected, not cross-matched, so Cruzada stays false and the degraded run
// remains visible as SinCruce.
func (e *Engine) enrichAccountingOnly(a domain.AccountingRecord) domain.EnrichedRecord {
	rec := domain.EnrichedRecord{
		BillingRecord: domain.BillingRecord{
			NumeroFactura: a.NumeroFactura,
			Variante:      a.Variante,
		},
		Moneda:        a.Moneda,
		ValorNetsuite: a.ValorNetsuite,
	}
	e.derive(&rec)
	return rec
}

func (e *Engine) derive(rec *domain.EnrichedRecord) {
	rec.Prefijo = invoiceid.Prefix(rec.NumeroFactura, e.prefixes)
	rec.Consecutivo = invoiceid.Consecutive(rec.NumeroFactura)
	rec.Categoria, rec.ColumnaDestino = e.rules.Classify(rec.Concepto)
	rec.TipoFactura, rec.HojaDestino = e.rules.RouteFor(rec.Prefijo)
}
