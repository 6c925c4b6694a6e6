package commands

import (
	"fmt"
	"os"

	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
	"github.com/fin-tools/ledger-atlas/pkg/runtime/terminal/export"
	"github.com/fin-tools/ledger-atlas/pkg/services/consolidate"
	"github.com/fin-tools/ledger-atlas/pkg/services/normalize"
	"github.com/fin-tools/ledger-atlas/pkg/services/rules"
	"github.com/fin-tools/ledger-atlas/pkg/store/excel"

	"github.com/spf13/cobra"
)

type ConsolidateCmd struct {
	rulesPath   string
	columnsPath string

	nuvaFacturas     string
	nuvaNotas        string
	netsuiteFacturas string
	netsuiteNotas    string

	outPath  string
	reporter *export.Reporter
}

func NewConsolidateCmd(reporter *export.Reporter) *cobra.Command {
	cc := &ConsolidateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Consolidate NUVA and Netsuite invoice exports into a reconciled report",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.rulesPath, "rules", "config/rules.yaml", "Path to the classification rules file")
	cmd.Flags().StringVar(&cc.columnsPath, "columns", "config/columns.yaml", "Path to the column mapping file")
	cmd.Flags().StringVar(&cc.nuvaFacturas, "nuva-facturas", "", "NUVA invoices workbook")
	cmd.Flags().StringVar(&cc.nuvaNotas, "nuva-notas-credito", "", "NUVA credit memo workbook")
	cmd.Flags().StringVar(&cc.netsuiteFacturas, "netsuite-facturas", "", "Netsuite invoices workbook")
	cmd.Flags().StringVar(&cc.netsuiteNotas, "netsuite-notas-credito", "", "Netsuite credit memo workbook")
	cmd.Flags().StringVar(&cc.outPath, "out", "consolidado.xlsx", "Output workbook path")

	return cmd
}

func (cc *ConsolidateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	ruleset, err := rules.Load(cc.rulesPath)
	if err != nil {
		return err
	}
	mappings, err := normalize.Load(cc.columnsPath)
	if err != nil {
		return err
	}

	var inputs consolidate.Inputs
	reads := []struct {
		path    string
		mapping normalize.TableMapping
		name    string
		dest    *domain.RawTable
	}{
		{cc.nuvaFacturas, mappings.NuvaFacturas, "nuva_facturas", &inputs.NuvaFacturas},
		{cc.nuvaNotas, mappings.NuvaNotasCredito, "nuva_notas_credito", &inputs.NuvaNotasCredito},
		{cc.netsuiteFacturas, mappings.NetsuiteFacturas, "netsuite_facturas", &inputs.NetsuiteFacturas},
		{cc.netsuiteNotas, mappings.NetsuiteNotasCredito, "netsuite_notas_credito", &inputs.NetsuiteNotasCredito},
	}
	for _, rd := range reads {
		if rd.path == "" {
			continue
		}
		table, err := readWorkbook(rd.path, rd.mapping.Sheet, rd.name)
		if err != nil {
			return err
		}
		*rd.dest = table
	}

	processor := consolidate.NewProcessor(mappings, ruleset)
	result, err := processor.Run(ctx, inputs)
	if err != nil {
		return err
	}

	out, err := os.Create(cc.outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()
	if err := excel.WriteWorkbook(out, result.Sheets, result.Stats); err != nil {
		return err
	}

	return cc.reporter.Handle(result.Stats)
}

func readWorkbook(path, sheet, name string) (domain.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return excel.ReadTable(f, sheet, name)
}
