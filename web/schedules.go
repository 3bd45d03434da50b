package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robinvdvleuten/finreport/schedule"
)

// Limit request body size to prevent memory exhaustion
const maxRequestBodySize = 1 << 20

type schedulesResponse struct {
	Schedules []schedule.Descriptor `json:"schedules"`
}

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	list, err := s.schedules.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, schedulesResponse{Schedules: nonNil(list)})
}

func (s *Server) handleAddSchedule(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req schedule.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &schedule.ValidationError{Field: "body", Message: "invalid JSON: " + err.Error()})
		return
	}

	d, err := s.schedules.Add(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, d)
}

func (s *Server) handleRemoveSchedule(w http.ResponseWriter, r *http.Request) {
	if err := s.schedules.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetEnabled(enabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := s.schedules.SetEnabled(r.Context(), chi.URLParam(r, "id"), enabled)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSONResponse(w, http.StatusOK, d)
	}
}

// handleDueSchedules lists enabled schedules whose next run is at or
// before ?at= (RFC 3339), defaulting to now.
func (s *Server) handleDueSchedules(w http.ResponseWriter, r *http.Request) {
	at := time.Now()
	if v := r.URL.Query().Get("at"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, &schedule.ValidationError{Field: "at", Message: "must be an RFC 3339 timestamp"})
			return
		}
		at = t
	}

	list, err := s.schedules.Due(r.Context(), at)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, schedulesResponse{Schedules: nonNil(list)})
}

func nonNil(list []schedule.Descriptor) []schedule.Descriptor {
	if list == nil {
		return []schedule.Descriptor{}
	}
	return list
}
