package consolidation

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/fin-tools/ledger-atlas/pkg/models/api"
	"github.com/fin-tools/ledger-atlas/pkg/models/domain"
	"github.com/fin-tools/ledger-atlas/pkg/services/consolidate"
	"github.com/fin-tools/ledger-atlas/pkg/services/normalize"
	"github.com/fin-tools/ledger-atlas/pkg/services/reconcile"
	"github.com/fin-tools/ledger-atlas/pkg/store/excel"
	"github.com/rs/zerolog"
)

const maxUploadBytes = 32 << 20

// Handler exposes consolidation runs over HTTP. Uploaded workbooks are read
// into raw tables and handed to the processor; nothing is kept between
// requests.
type Handler struct {
	processor *consolidate.Processor
	mappings  *normalize.Mappings
}

func NewHandler(processor *consolidate.Processor, mappings *normalize.Mappings) *Handler {
	return &Handler{processor: processor, mappings: mappings}
}

// Consolidate handles POST /api/v1/consolidations. The multipart form may
// carry up to four workbooks (nuva_facturas, nuva_notas_credito,
// netsuite_facturas, netsuite_notas_credito); omitted ones are treated as
// empty inputs. ?format=xlsx streams the report workbook instead of JSON.
func (h *Handler) Consolidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart request: %v", err))
		return
	}

	inputs, err := h.readInputs(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.processor.Run(ctx, inputs)
	if err != nil {
		var mismatch *normalize.SchemaMismatchError
		switch {
		case errors.As(err, &mismatch), errors.Is(err, reconcile.ErrNoInputData):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			logger.Error().Err(err).Msg("consolidation run failed")
			writeError(w, http.StatusInternalServerError, "consolidation failed")
		}
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="consolidado.xlsx"`)
		if err := excel.WriteWorkbook(w, result.Sheets, result.Stats); err != nil {
			logger.Error().Err(err).Msg("failed to stream report workbook")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.NewConsolidationResult(result.Stats, result.Sheets)); err != nil {
		logger.Error().Err(err).Msg("failed to encode consolidation result")
	}
}

func (h *Handler) readInputs(r *http.Request) (consolidate.Inputs, error) {
	var in consolidate.Inputs
	reads := []struct {
		field   string
		mapping normalize.TableMapping
		dest    *domain.RawTable
	}{
		{"nuva_facturas", h.mappings.NuvaFacturas, &in.NuvaFacturas},
		{"nuva_notas_credito", h.mappings.NuvaNotasCredito, &in.NuvaNotasCredito},
		{"netsuite_facturas", h.mappings.NetsuiteFacturas, &in.NetsuiteFacturas},
		{"netsuite_notas_credito", h.mappings.NetsuiteNotasCredito, &in.NetsuiteNotasCredito},
	}

	for _, rd := range reads {
		file, _, err := r.FormFile(rd.field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return in, fmt.Errorf("reading upload %q: %w", rd.field, err)
		}
		table, err := readUpload(file, rd.mapping.Sheet, rd.field)
		if err != nil {
			return in, err
		}
		*rd.dest = table
	}
	return in, nil
}

func readUpload(file multipart.File, sheet, name string) (domain.RawTable, error) {
	defer file.Close()
	return excel.ReadTable(file, sheet, name)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Mensaje: msg})
}
