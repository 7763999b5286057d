package app

import (
	"encoding/csv"
	"io"
	"strconv"

	"calorietracker/internal/domain"
)

var (
	entryCSVHeader = []string{"id", "time", "meal", "food", "weight_g", "kcal", "protein", "carbs", "fat"}
	foodCSVHeader  = []string{"name", "kcal_per_100g", "protein_per_100g", "carbs_per_100g", "fat_per_100g"}
)

// WriteEntriesCSV writes a header row and one row per entry.
func WriteEntriesCSV(w io.Writer, entries []domain.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(entryCSVHeader); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.Time,
			string(e.Meal),
			e.Food,
			formatFloat(e.WeightGrams),
			formatFloat(e.Nutrients.Kcal),
			formatFloat(e.Nutrients.Protein),
			formatFloat(e.Nutrients.Carbs),
			formatFloat(e.Nutrients.Fat),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFoodsCSV writes a header row and one row per food.
func WriteFoodsCSV(w io.Writer, foods []domain.Food) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(foodCSVHeader); err != nil {
		return err
	}
	for _, f := range foods {
		row := []string{
			f.Name,
			formatFloat(f.Per100.Kcal),
			formatFloat(f.Per100.Protein),
			formatFloat(f.Per100.Carbs),
			formatFloat(f.Per100.Fat),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
