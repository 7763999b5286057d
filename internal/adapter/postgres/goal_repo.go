package postgres

import (
	"context"
	"database/sql"
	"errors"

	"calorietracker/internal/domain"
)

// GetGoal returns the user's goal, or nil if no row exists.
func (d *DB) GetGoal(ctx context.Context, userID int64) (*domain.Goal, error) {
	g := domain.Goal{UserID: userID}
	err := d.sql.QueryRowContext(ctx,
		"SELECT daily_kcal, breakfast_pct, lunch_pct, dinner_pct, snack_pct FROM goals WHERE user_id=$1;",
		userID,
	).Scan(&g.DailyKcal, &g.Breakfast, &g.Lunch, &g.Dinner, &g.Snack)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// PutGoal writes the whole goal row, replacing any existing one.
func (d *DB) PutGoal(ctx context.Context, g domain.Goal) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO goals(user_id, daily_kcal, breakfast_pct, lunch_pct, dinner_pct, snack_pct)
		 VALUES($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
		   daily_kcal = EXCLUDED.daily_kcal,
		   breakfast_pct = EXCLUDED.breakfast_pct,
		   lunch_pct = EXCLUDED.lunch_pct,
		   dinner_pct = EXCLUDED.dinner_pct,
		   snack_pct = EXCLUDED.snack_pct;`,
		g.UserID, g.DailyKcal, g.Breakfast, g.Lunch, g.Dinner, g.Snack,
	)
	return err
}
