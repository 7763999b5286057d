package domain

import "context"

// Goal is a user's daily calorie goal and per-meal percentage targets. The
// percentages are independent and are not required to sum to 100.
type Goal struct {
	UserID    int64   `json:"-"`
	DailyKcal float64 `json:"dailyKcal"`
	Breakfast float64 `json:"breakfastPct"`
	Lunch     float64 `json:"lunchPct"`
	Dinner    float64 `json:"dinnerPct"`
	Snack     float64 `json:"snackPct"`
}

// DefaultGoal returns the settings a user starts with.
func DefaultGoal(userID int64) Goal {
	return Goal{
		UserID:    userID,
		DailyKcal: 2000,
		Breakfast: 25,
		Lunch:     35,
		Dinner:    30,
		Snack:     10,
	}
}

// Percent returns the target percentage configured for m.
func (g Goal) Percent(m Meal) float64 {
	switch m {
	case Breakfast:
		return g.Breakfast
	case Lunch:
		return g.Lunch
	case Dinner:
		return g.Dinner
	case Snack:
		return g.Snack
	}
	return 0
}

// PercentTotal is the sum of the four meal percentages.
func (g Goal) PercentTotal() float64 {
	return g.Breakfast + g.Lunch + g.Dinner + g.Snack
}

// GoalRepository is the port for goal persistence. GetGoal returns nil, nil
// when no row exists.
type GoalRepository interface {
	GetGoal(ctx context.Context, userID int64) (*Goal, error)
	PutGoal(ctx context.Context, g Goal) error
}
