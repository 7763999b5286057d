package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"calorietracker/internal/domain"
)

// ErrInvalidWindow indicates a history window shorter than one day.
var ErrInvalidWindow = errors.New("days must be >= 1")

// SummaryService computes daily totals, goal progress and history series.
type SummaryService struct {
	entries domain.EntryRepository
	goals   *GoalService
}

// NewSummaryService creates a SummaryService. Goals are read through
// GoalService so a missing row is materialised on the way.
func NewSummaryService(entries domain.EntryRepository, goals *GoalService) *SummaryService {
	return &SummaryService{entries: entries, goals: goals}
}

// MealTarget compares a meal's intake against its share of the daily goal.
type MealTarget struct {
	Meal       domain.Meal `json:"meal"`
	Percent    float64     `json:"percent"`
	TargetKcal float64     `json:"targetKcal"`
	ActualKcal float64     `json:"actualKcal"`
}

// DaySummary is everything shown for a single day.
type DaySummary struct {
	Day            string                           `json:"day"`
	Entries        []domain.Entry                   `json:"entries"`
	Totals         domain.Nutrients                 `json:"totals"`
	Meals          map[domain.Meal]domain.Nutrients `json:"meals"`
	Goal           domain.Goal                      `json:"goal"`
	RemainingKcal  float64                          `json:"remainingKcal"`
	Progress       float64                          `json:"progress"`
	Targets        []MealTarget                     `json:"targets"`
	TargetPctTotal float64                          `json:"targetPctTotal"`
}

// DailyTotals sums every channel across entries. No entries yields zeros.
func DailyTotals(entries []domain.Entry) domain.Nutrients {
	var total domain.Nutrients
	for _, e := range entries {
		total = total.Add(e.Nutrients)
	}
	return total
}

// MealBreakdown sums entries per meal. Meals without entries are absent
// from the result rather than zero.
func MealBreakdown(entries []domain.Entry) map[domain.Meal]domain.Nutrients {
	out := make(map[domain.Meal]domain.Nutrients)
	for _, e := range entries {
		out[e.Meal] = out[e.Meal].Add(e.Nutrients)
	}
	return out
}

// Progress returns the kcal left against goal, which may be negative, and
// the consumed fraction clamped to [0, 1]. The denominator is floored at 1.
func Progress(goalKcal, totalKcal float64) (remaining, fraction float64) {
	remaining = goalKcal - totalKcal
	fraction = totalKcal / max(goalKcal, 1)
	return remaining, min(max(fraction, 0), 1)
}

// Day builds the summary for one calendar day.
func (s *SummaryService) Day(ctx context.Context, userID int64, day string) (*DaySummary, error) {
	if _, err := time.Parse(domain.DayLayout, day); err != nil {
		return nil, ErrInvalidDay
	}
	entries, err := s.entries.ListEntriesForDay(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	goal, err := s.goals.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := DailyTotals(entries)
	meals := MealBreakdown(entries)
	remaining, fraction := Progress(goal.DailyKcal, totals.Kcal)

	targets := make([]MealTarget, 0, len(domain.Meals))
	for _, m := range domain.Meals {
		pct := goal.Percent(m)
		targets = append(targets, MealTarget{
			Meal:       m,
			Percent:    pct,
			TargetKcal: goal.DailyKcal * pct / 100,
			ActualKcal: meals[m].Kcal,
		})
	}

	if entries == nil {
		entries = []domain.Entry{}
	}
	return &DaySummary{
		Day:            day,
		Entries:        entries,
		Totals:         totals,
		Meals:          meals,
		Goal:           *goal,
		RemainingKcal:  remaining,
		Progress:       fraction,
		Targets:        targets,
		TargetPctTotal: goal.PercentTotal(),
	}, nil
}

// History returns exactly days rows, one per calendar day ending at today,
// ascending, with zero rows for days that have no entries.
func (s *SummaryService) History(ctx context.Context, userID int64, today string, days int) ([]domain.DayTotals, error) {
	if days < 1 {
		return nil, ErrInvalidWindow
	}
	end, err := time.Parse(domain.DayLayout, today)
	if err != nil {
		return nil, ErrInvalidDay
	}
	start := end.AddDate(0, 0, -(days - 1))

	rows, err := s.entries.DailyTotalsSince(ctx, userID, start.Format(domain.DayLayout))
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	byDay := make(map[string]domain.Nutrients, len(rows))
	for _, r := range rows {
		byDay[r.Day] = r.Nutrients
	}

	points := make([]domain.DayTotals, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := end.AddDate(0, 0, -i).Format(domain.DayLayout)
		points = append(points, domain.DayTotals{Day: d, Nutrients: byDay[d]})
	}
	return points, nil
}
