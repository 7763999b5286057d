package adapthttp

import (
	"bytes"
	"fmt"
	"net/http"

	"calorietracker/internal/app"
	"calorietracker/internal/domain"
)

func (s *Server) handleFoods(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := userFromContext(ctx)

	switch r.Method {
	case http.MethodGet:
		items, err := s.foods.Catalog(ctx, user.ID)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPut:
		var body struct {
			Name   string           `json:"name"`
			Per100 domain.Nutrients `json:"per100g"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		food, err := s.foods.Upsert(ctx, user.ID, body.Name, body.Per100)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"food": food})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleFoodsExport(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	foods, err := s.foods.List(r.Context(), user.ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := app.WriteFoodsCSV(&buf, foods); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeCSV(w, fmt.Sprintf("foods_user_%d.csv", user.ID), &buf)
}
