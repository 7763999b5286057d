package domain

import (
	"context"
	"time"
)

// DayLayout is the calendar date format used for entry days.
const DayLayout = "2006-01-02"

// TimeLayout is the time-of-day format stored with each entry.
const TimeLayout = "15:04:05"

// Meal is the category an entry is logged under.
type Meal string

// Meal categories.
const (
	Breakfast Meal = "Breakfast"
	Lunch     Meal = "Lunch"
	Dinner    Meal = "Dinner"
	Snack     Meal = "Snack"
)

// Meals lists the categories in display order.
var Meals = []Meal{Breakfast, Lunch, Dinner, Snack}

// Valid reports whether m is one of the four known categories.
func (m Meal) Valid() bool {
	switch m {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

// Entry is a single consumption event. Nutrients is a snapshot taken at log
// time and is never recomputed.
type Entry struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Day         string    `json:"day"`
	Time        string    `json:"time"`
	Food        string    `json:"food"`
	WeightGrams float64   `json:"weightGrams"`
	Meal        Meal      `json:"meal"`
	Nutrients   Nutrients `json:"nutrients"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DayTotals is the nutrient sum for one calendar day.
type DayTotals struct {
	Day string `json:"day"`
	Nutrients
}

// EntryRepository is the port for entry log persistence.
type EntryRepository interface {
	AddEntry(ctx context.Context, e Entry) (int64, error)
	DeleteEntry(ctx context.Context, userID int64, id int64) error
	ListEntriesForDay(ctx context.Context, userID int64, day string) ([]Entry, error)
	// DailyTotalsSince returns one row per day that has entries on or after
	// startDay, ascending. Days without entries are omitted.
	DailyTotalsSince(ctx context.Context, userID int64, startDay string) ([]DayTotals, error)
}
