// Package consolidate wires the full processing run: normalize the four raw
// inputs, combine per system, reconcile, prepare sheets and aggregate
// statistics, all in one synchronous pass with no shared state.
package consolidate

import (
	"context"
	"fmt"

	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
	"github.com/fin-tools/ledger-atlas/pkg/services/normalize"
	"github.com/fin-tools/ledger-atlas/pkg/services/reconcile"
	"github.com/fin-tools/ledger-atlas/pkg/services/rules"
	"github.com/fin-tools/ledger-atlas/pkg/services/sheets"
	"github.com/fin-tools/ledger-atlas/pkg/services/stats"
	"github.com/rs/zerolog"
)

// Inputs are the raw tables of one processing run. Any table may be empty;
// reconciliation decides whether enough data remains.
type Inputs struct {
	NuvaFacturas         domain.RawTable
	NuvaNotasCredito     domain.RawTable
	NetsuiteFacturas     domain.RawTable
	NetsuiteNotasCredito domain.RawTable
}

// Result is the output bundle of one run.
type Result struct {
	Enriched []domain.EnrichedRecord
	Sheets   map[string]domain.SheetTable
	Stats    domain.Statistics
}

// Processor runs consolidations under one validated configuration pair.
// It holds no per-run state; concurrent Runs are independent.
type Processor struct {
	mappings *normalize.Mappings
	engine   *reconcile.Engine
}

func NewProcessor(mappings *normalize.Mappings, ruleset *rules.Ruleset) *Processor {
	return &Processor{
		mappings: mappings,
		engine:   reconcile.NewEngine(ruleset),
	}
}

// Run executes one consolidation. Structural failures (schema mismatch, no
// input at all) abort the run; soft conditions only show up in Stats.
func (p *Processor) Run(ctx context.Context, in Inputs) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	nuvaFacturas, err := normalize.Billing(in.NuvaFacturas, p.mappings.For(domain.SourceNuva, domain.VariantFacturas), domain.VariantFacturas)
	if err != nil {
		return nil, fmt.Errorf("normalizing nuva facturas: %w", err)
	}
	nuvaNotas, err := normalize.Billing(in.NuvaNotasCredito, p.mappings.For(domain.SourceNuva, domain.VariantNotasCredito), domain.VariantNotasCredito)
	if err != nil {
		return nil, fmt.Errorf("normalizing nuva notas credito: %w", err)
	}
	netsuiteFacturas, err := normalize.Accounting(in.NetsuiteFacturas, p.mappings.For(domain.SourceNetsuite, domain.VariantFacturas), domain.VariantFacturas)
	if err != nil {
		return nil, fmt.Errorf("normalizing netsuite facturas: %w", err)
	}
	netsuiteNotas, err := normalize.Accounting(in.NetsuiteNotasCredito, p.mappings.For(domain.SourceNetsuite, domain.VariantNotasCredito), domain.VariantNotasCredito)
	if err != nil {
		return nil, fmt.Errorf("normalizing netsuite notas credito: %w", err)
	}

	billing := reconcile.CombineBilling(nuvaFacturas, nuvaNotas)
	accounting := reconcile.CombineAccounting(netsuiteFacturas, netsuiteNotas)

	enriched, multiplied, err := p.engine.Reconcile(ctx, billing, accounting)
	if err != nil {
		return nil, err
	}

	prepared := sheets.Prepare(enriched)
	summary := stats.Aggregate(enriched, multiplied)

	if summary.FilasExcluidas > 0 {
		logger.Warn().Int("filas_excluidas", summary.FilasExcluidas).
			Msg("rows with unmapped prefixes were excluded from every output sheet")
	}
	logger.Info().
		Int("total_facturas", summary.TotalFacturas).
		Int("sin_cruce", summary.SinCruce).
		Int("sin_clasificar", summary.SinClasificar).
		Msg("consolidation run complete")

	return &Result{
		Enriched: enriched,
		Sheets:   prepared.Tables(),
		Stats:    summary,
	}, nil
}
