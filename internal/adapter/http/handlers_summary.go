package adapthttp

import (
	"fmt"
	"net/http"
	"time"

	"calorietracker/internal/app"
)

// maxHistoryDays bounds the history window to a little over a year.
const maxHistoryDays = 366

func (s *Server) handleSummaryDay(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	summary, err := s.summary.Day(r.Context(), user.ID, dayQuery(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleSummaryHistory(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	days, err := intQuery(r, "days", 7)
	if err != nil {
		s.writeServiceError(w, r, fmt.Errorf("%w: %v", app.ErrInvalidWindow, err))
		return
	}
	days = min(days, maxHistoryDays)
	today := localDayString(time.Now())

	items, err := s.summary.History(r.Context(), user.ID, today, days)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"today": today, "days": days, "items": items})
}
