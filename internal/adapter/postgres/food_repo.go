package postgres

import (
	"context"
	"database/sql"
	"errors"

	"calorietracker/internal/domain"
)

// UpsertFood inserts a food or replaces the existing definition in place.
func (d *DB) UpsertFood(ctx context.Context, userID int64, name string, per100 domain.Nutrients) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO foods(user_id, name, kcal_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g)
		 VALUES($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, name) DO UPDATE SET
		   kcal_per_100g = EXCLUDED.kcal_per_100g,
		   protein_per_100g = EXCLUDED.protein_per_100g,
		   carbs_per_100g = EXCLUDED.carbs_per_100g,
		   fat_per_100g = EXCLUDED.fat_per_100g;`,
		userID, name, per100.Kcal, per100.Protein, per100.Carbs, per100.Fat,
	)
	return err
}

// GetFood returns a user's food by name, or nil if it does not exist.
func (d *DB) GetFood(ctx context.Context, userID int64, name string) (*domain.Food, error) {
	f := domain.Food{UserID: userID, Name: name}
	err := d.sql.QueryRowContext(ctx,
		"SELECT kcal_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g FROM foods WHERE user_id=$1 AND name=$2;",
		userID, name,
	).Scan(&f.Per100.Kcal, &f.Per100.Protein, &f.Per100.Carbs, &f.Per100.Fat)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListFoods returns a user's foods ordered by name.
func (d *DB) ListFoods(ctx context.Context, userID int64) ([]domain.Food, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT name, kcal_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g FROM foods WHERE user_id=$1 ORDER BY name;",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Food, 0)
	for rows.Next() {
		f := domain.Food{UserID: userID}
		if err := rows.Scan(&f.Name, &f.Per100.Kcal, &f.Per100.Protein, &f.Per100.Carbs, &f.Per100.Fat); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
