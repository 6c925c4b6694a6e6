package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/template"

	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
)

// Reporter renders a run's statistics as a terminal summary.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

type summaryLine struct {
	Label string
	Value any
}

func (c *Reporter) Handle(s domain.Statistics) error {
	lines := []summaryLine{
		{"Total facturas", s.TotalFacturas},
		{"Sin valor", s.SinValor},
		{"Sin clasificar", s.SinClasificar},
		{"Sin cruce", s.SinCruce},
		{"Filas excluidas (sin hoja)", s.FilasExcluidas},
		{"Filas multiplicadas", s.FilasMultiplicadas},
	}

	currencies := make([]string, 0, len(s.SumaPorMoneda))
	for m := range s.SumaPorMoneda {
		currencies = append(currencies, m)
	}
	sort.Strings(currencies)
	for _, m := range currencies {
		lines = append(lines, summaryLine{fmt.Sprintf("Total %s", m), s.SumaPorMoneda[m].StringFixed(2)})
	}

	sheets := make([]string, 0, len(s.FacturasPorHoja))
	for sh := range s.FacturasPorHoja {
		sheets = append(sheets, string(sh))
	}
	sort.Strings(sheets)
	for _, sh := range sheets {
		lines = append(lines, summaryLine{fmt.Sprintf("Facturas en %s", sh), s.FacturasPorHoja[domain.Sheet(sh)]})
	}

	tipos := make([]string, 0, len(s.FacturasPorTipo))
	for tp := range s.FacturasPorTipo {
		tipos = append(tipos, string(tp))
	}
	sort.Strings(tipos)
	for _, tp := range tipos {
		lines = append(lines, summaryLine{fmt.Sprintf("Tipo %s", tp), s.FacturasPorTipo[domain.InvoiceType(tp)]})
	}

	tmpl := `
Resumen de consolidacion
------------------------
{{range .}}{{printf "%-30s %v" .Label .Value}}
{{end}}`

	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, lines)
}
