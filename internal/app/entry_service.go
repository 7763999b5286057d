package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"calorietracker/internal/domain"
)

var (
	// ErrUnknownFood indicates the food is not in the user's catalog.
	ErrUnknownFood = errors.New("unknown food")
	// ErrInvalidWeight indicates a non-positive weight.
	ErrInvalidWeight = errors.New("weight must be > 0")
	// ErrInvalidMeal indicates a meal outside Breakfast, Lunch, Dinner and Snack.
	ErrInvalidMeal = errors.New("meal must be one of Breakfast, Lunch, Dinner, Snack")
	// ErrInvalidDay indicates a malformed calendar date.
	ErrInvalidDay = errors.New("day must be formatted as YYYY-MM-DD")
	// ErrInvalidTime indicates a malformed time of day.
	ErrInvalidTime = errors.New("time must be formatted as HH:MM:SS")
)

// EntryInput describes a consumption event to log. Blank Day and Time
// default to the current local date and time.
type EntryInput struct {
	Day         string
	Time        string
	Food        string
	WeightGrams float64
	Meal        domain.Meal
}

// EntryService encapsulates entry log use cases.
type EntryService struct {
	entries domain.EntryRepository
	foods   domain.FoodRepository
	now     func() time.Time
}

// NewEntryService creates an EntryService. The food repository is only
// consulted when an entry is created.
func NewEntryService(entries domain.EntryRepository, foods domain.FoodRepository) *EntryService {
	return &EntryService{entries: entries, foods: foods, now: time.Now}
}

// WithClock replaces the time source used for default day and time.
func (s *EntryService) WithClock(now func() time.Time) *EntryService {
	s.now = now
	return s
}

// Append validates the input, snapshots the food's nutrients scaled to the
// weight and stores the entry.
func (s *EntryService) Append(ctx context.Context, userID int64, in EntryInput) (*domain.Entry, error) {
	if math.IsNaN(in.WeightGrams) || math.IsInf(in.WeightGrams, 0) || in.WeightGrams <= 0 {
		return nil, ErrInvalidWeight
	}
	if !in.Meal.Valid() {
		return nil, ErrInvalidMeal
	}

	now := s.now().In(time.Local)
	day := in.Day
	if day == "" {
		day = now.Format(domain.DayLayout)
	} else if _, err := time.Parse(domain.DayLayout, day); err != nil {
		return nil, ErrInvalidDay
	}
	clock := in.Time
	if clock == "" {
		clock = now.Format(domain.TimeLayout)
	} else if _, err := time.Parse(domain.TimeLayout, clock); err != nil {
		return nil, ErrInvalidTime
	}

	name := domain.NormalizeFoodName(in.Food)
	food, err := s.foods.GetFood(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("lookup food %q: %w", name, err)
	}
	if food == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFood, name)
	}

	snapshot := domain.Scale(food.Per100, in.WeightGrams)
	if !snapshot.Finite() {
		return nil, ErrInvalidWeight
	}

	e := domain.Entry{
		UserID:      userID,
		Day:         day,
		Time:        clock,
		Food:        name,
		WeightGrams: in.WeightGrams,
		Meal:        in.Meal,
		Nutrients:   snapshot,
		CreatedAt:   now,
	}
	id, err := s.entries.AddEntry(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("add entry: %w", err)
	}
	e.ID = id
	return &e, nil
}

// ListForDay returns the user's entries for day in insertion order.
func (s *EntryService) ListForDay(ctx context.Context, userID int64, day string) ([]domain.Entry, error) {
	if _, err := time.Parse(domain.DayLayout, day); err != nil {
		return nil, ErrInvalidDay
	}
	return s.entries.ListEntriesForDay(ctx, userID, day)
}

// Remove deletes the entry if it belongs to the user. Unknown or foreign
// ids are not an error.
func (s *EntryService) Remove(ctx context.Context, userID int64, id int64) error {
	return s.entries.DeleteEntry(ctx, userID, id)
}
