package adapthttp

import (
	"net/http"

	"calorietracker/internal/domain"
)

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := userFromContext(ctx)

	switch r.Method {
	case http.MethodGet:
		goal, err := s.goals.Get(ctx, user.ID)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"goal": goal})

	case http.MethodPut:
		var body domain.Goal
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		goal, err := s.goals.Replace(ctx, user.ID, body)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"goal": goal})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
