package postgres

import (
	"context"

	"calorietracker/internal/domain"
)

// AddEntry inserts a log entry and returns its ID.
func (d *DB) AddEntry(ctx context.Context, e domain.Entry) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO entries(user_id, day, time, food, weight_g, meal, kcal, protein, carbs, fat, created_at)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id;`,
		e.UserID, e.Day, e.Time, e.Food, e.WeightGrams, string(e.Meal),
		e.Nutrients.Kcal, e.Nutrients.Protein, e.Nutrients.Carbs, e.Nutrients.Fat,
		e.CreatedAt.UTC(),
	).Scan(&id)
	return id, err
}

// DeleteEntry removes an entry by ID, scoped to a user.
func (d *DB) DeleteEntry(ctx context.Context, userID int64, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM entries WHERE id=$1 AND user_id=$2;", id, userID)
	return err
}

// ListEntriesForDay returns a user's entries for day in ID order.
func (d *DB) ListEntriesForDay(ctx context.Context, userID int64, day string) ([]domain.Entry, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, time, food, weight_g, meal, kcal, protein, carbs, fat, created_at
		 FROM entries WHERE user_id=$1 AND day=$2 ORDER BY id;`, userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Entry, 0)
	for rows.Next() {
		e := domain.Entry{UserID: userID, Day: day}
		var meal string
		if err := rows.Scan(&e.ID, &e.Time, &e.Food, &e.WeightGrams, &meal,
			&e.Nutrients.Kcal, &e.Nutrients.Protein, &e.Nutrients.Carbs, &e.Nutrients.Fat, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Meal = domain.Meal(meal)
		out = append(out, e)
	}
	return out, rows.Err()
}

// DailyTotalsSince sums a user's entries per day for days >= startDay.
func (d *DB) DailyTotalsSince(ctx context.Context, userID int64, startDay string) ([]domain.DayTotals, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT day, SUM(kcal), SUM(protein), SUM(carbs), SUM(fat)
		 FROM entries WHERE user_id=$1 AND day >= $2 GROUP BY day ORDER BY day;`, userID, startDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.DayTotals, 0)
	for rows.Next() {
		var t domain.DayTotals
		if err := rows.Scan(&t.Day, &t.Kcal, &t.Protein, &t.Carbs, &t.Fat); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
