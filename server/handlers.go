package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sig-0/pbrates/ingest"
	"github.com/sig-0/pbrates/storage/types"
)

var (
	errUnableToRenderRates  = errors.New("unable to render rates")
	errUnableToFetchArchive = errors.New("unable to fetch archive")
	errDayNotArchived       = errors.New("day not archived")
	errInvalidDate          = errors.New("invalid date (must be DD.MM.YYYY)")
)

// Rates runs the day fetch pipeline for the trailing ?days=N days
func (s *Server) Rates(w http.ResponseWriter, r *http.Request) {
	days, err := ingest.ParseDays(r.URL.Query().Get("days"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	results := s.fetcher.Run(r.Context(), days)

	body, err := types.RenderAggregate(results)
	if err != nil {
		s.logger.Debug(
			"unable to render rates",
			"err", err,
		)

		writeError(w, http.StatusInternalServerError, errUnableToRenderRates)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write(body) //nolint:errcheck // Fine to ignore
}

// Archive lists the archived days, newest first
func (s *Server) Archive(w http.ResponseWriter, r *http.Request) {
	dates, err := s.storage.ListDates(r.Context())
	if err != nil {
		s.logger.Debug(
			"unable to fetch archived dates",
			"err", err,
		)

		writeError(w, http.StatusInternalServerError, errUnableToFetchArchive)

		return
	}

	if dates == nil {
		dates = []string{}
	}

	writeJSON(w, http.StatusOK, &DatesResponse{
		Results: dates,
	})
}

// ArchivedDay fetches the archived rates for a single day
func (s *Server) ArchivedDay(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(chi.URLParam(r, "date"))

	if _, err := types.ParseDate(date); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidDate)

		return
	}

	day, err := s.storage.DayRates(r.Context(), date)
	if err != nil {
		s.logger.Debug(
			"unable to fetch archived day",
			"date", date,
			"err", err,
		)

		writeError(w, http.StatusInternalServerError, errUnableToFetchArchive)

		return
	}

	if day == nil {
		writeError(w, http.StatusNotFound, errDayNotArchived)

		return
	}

	writeJSON(w, http.StatusOK, day)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Fine to ignore
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := &ErrorResponse{
		Error: err.Error(),
	}

	writeJSON(w, status, resp)
}
