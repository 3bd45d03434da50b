package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robinvdvleuten/finreport/analytics"
	"github.com/robinvdvleuten/finreport/export"
	"github.com/robinvdvleuten/finreport/report"
)

// handleGenerateReport generates a report from the loaded dataset and
// stores it as the latest report of its type.
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	typ, err := report.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, err)
		return
	}
	period := analytics.ParsePeriod(r.URL.Query().Get("period"))

	generated, err := s.generate(r.Context(), typ, period)
	if err != nil {
		s.logger.Error().Err(err).Str("type", typ.String()).Msg("report generation failed")
		writeError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, generated)
}

// handleExportReport renders the latest generated report of the requested
// type and period. The report must have been generated first.
func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	typ, err := report.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, err)
		return
	}
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, err)
		return
	}
	period := analytics.ParsePeriod(r.URL.Query().Get("period"))

	generated, err := s.workspace.Lookup(typ, period)
	if err != nil {
		writeError(w, err)
		return
	}

	exporter, err := export.ForFormat(format)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := export.Render(r.Context(), exporter, generated)
	if err != nil {
		s.logger.Error().Err(err).Str("format", string(format)).Msg("export failed")
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(generated, format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
