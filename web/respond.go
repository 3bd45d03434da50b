package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	finerrors "github.com/robinvdvleuten/finreport/errors"
)

var jsonFormatter = finerrors.NewJSONFormatter()

// writeJSONResponse writes data as JSON with the given status.
func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes err in the {"errors": [...]} envelope with a status
// derived from its kind.
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(err))
	_, _ = w.Write([]byte(jsonFormatter.FormatAll([]error{err})))
}

func statusFor(err error) int {
	switch finerrors.Classify(err) {
	case finerrors.KindValidation, finerrors.KindUnknownType, finerrors.KindUnknownFormat:
		return http.StatusBadRequest
	case finerrors.KindNotFound:
		return http.StatusNotFound
	case finerrors.KindNotGenerated:
		return http.StatusConflict
	case finerrors.KindParse:
		return http.StatusUnprocessableEntity
	case finerrors.KindLocked:
		return http.StatusLocked
	}
	return http.StatusInternalServerError
}

// requestLogger logs every request with its status and duration.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("HTTP request")
		})
	}
}
