package api

import "github.com/fin-tools/ledger-atlas/pkg/models/domain"

// Sheet is the wire form of a prepared destination sheet.
type Sheet struct {
	Columnas []string `json:"columnas"`
	Filas    [][]any  `json:"filas"`
}

// ConsolidationResult is the JSON body returned for a completed run.
type ConsolidationResult struct {
	Estadisticas domain.Statistics `json:"estadisticas"`
	Hojas        map[string]Sheet  `json:"hojas"`
}

// Error is the JSON body of a failed request.
type Error struct {
	Mensaje string `json:"mensaje"`
}

func NewConsolidationResult(stats domain.Statistics, tables map[string]domain.SheetTable) ConsolidationResult {
	hojas := make(map[string]Sheet, len(tables))
	for name, t := range tables {
		hojas[name] = Sheet{Columnas: t.Columns, Filas: t.Rows}
	}
	return ConsolidationResult{Estadisticas: stats, Hojas: hojas}
}
