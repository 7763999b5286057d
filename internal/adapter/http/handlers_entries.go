package adapthttp

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"calorietracker/internal/app"
	"calorietracker/internal/domain"
)

var errInvalidUnit = errors.New("unit must be g or oz")

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := userFromContext(ctx)

	switch r.Method {
	case http.MethodGet:
		day := dayQuery(r)
		items, err := s.entries.ListForDay(ctx, user.ID, day)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"day": day, "items": items})

	case http.MethodPost:
		var body struct {
			Day    string      `json:"day"`
			Time   string      `json:"time"`
			Food   string      `json:"food"`
			Weight float64     `json:"weight"`
			Unit   string      `json:"unit"`
			Meal   domain.Meal `json:"meal"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if body.Unit == "" {
			body.Unit = "g"
		}
		if !domain.ValidMassUnit(body.Unit) {
			writeError(w, http.StatusBadRequest, errInvalidUnit)
			return
		}

		entry, err := s.entries.Append(ctx, user.ID, app.EntryInput{
			Day:         body.Day,
			Time:        body.Time,
			Food:        body.Food,
			WeightGrams: domain.ConvertMass(body.Weight, body.Unit, "g"),
			Meal:        body.Meal,
		})
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleEntryDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, errors.New("invalid entry id"))
		return
	}
	if err := s.entries.Remove(r.Context(), user.ID, id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleEntriesExport(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	day := dayQuery(r)

	items, err := s.entries.ListForDay(r.Context(), user.ID, day)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := app.WriteEntriesCSV(&buf, items); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeCSV(w, fmt.Sprintf("calorie_log_%s.csv", day), &buf)
}
