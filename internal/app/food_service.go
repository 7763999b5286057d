package app

import (
	"context"
	"errors"
	"fmt"

	"calorietracker/internal/domain"
)

var (
	// ErrEmptyFoodName indicates a blank food name.
	ErrEmptyFoodName = errors.New("food name cannot be empty")
	// ErrInvalidNutrients indicates a negative or non-finite nutrient density.
	ErrInvalidNutrients = errors.New("nutrient values must be finite and >= 0")
)

// DefaultFoods is the starter catalog given to accounts with no foods.
var DefaultFoods = []domain.Food{
	{Name: "rice", Per100: domain.Nutrients{Kcal: 130, Protein: 2.7, Carbs: 28.0, Fat: 0.3}},
	{Name: "roti", Per100: domain.Nutrients{Kcal: 120, Protein: 3.6, Carbs: 20.0, Fat: 1.0}},
	{Name: "chicken", Per100: domain.Nutrients{Kcal: 165, Protein: 31.0, Carbs: 0.0, Fat: 3.6}},
	{Name: "egg", Per100: domain.Nutrients{Kcal: 155, Protein: 13.0, Carbs: 1.1, Fat: 11.0}},
	{Name: "milk", Per100: domain.Nutrients{Kcal: 60, Protein: 3.2, Carbs: 5.0, Fat: 3.3}},
	{Name: "apple", Per100: domain.Nutrients{Kcal: 52, Protein: 0.3, Carbs: 14.0, Fat: 0.2}},
	{Name: "banana", Per100: domain.Nutrients{Kcal: 89, Protein: 1.1, Carbs: 23.0, Fat: 0.3}},
	{Name: "paneer", Per100: domain.Nutrients{Kcal: 265, Protein: 18.0, Carbs: 1.2, Fat: 20.8}},
	{Name: "dal", Per100: domain.Nutrients{Kcal: 116, Protein: 9.0, Carbs: 20.0, Fat: 1.0}},
	{Name: "oats", Per100: domain.Nutrients{Kcal: 389, Protein: 17.0, Carbs: 66.0, Fat: 7.0}},
}

// FoodService encapsulates food catalog use cases.
type FoodService struct {
	repo domain.FoodRepository
}

// NewFoodService creates a FoodService backed by the given repository.
func NewFoodService(repo domain.FoodRepository) *FoodService {
	return &FoodService{repo: repo}
}

// Upsert inserts or fully replaces the food with the normalized name.
// Entries already logged against the food keep their stored values.
func (s *FoodService) Upsert(ctx context.Context, userID int64, name string, per100 domain.Nutrients) (*domain.Food, error) {
	name = domain.NormalizeFoodName(name)
	if name == "" {
		return nil, ErrEmptyFoodName
	}
	if !per100.Finite() || !per100.NonNegative() {
		return nil, ErrInvalidNutrients
	}
	if err := s.repo.UpsertFood(ctx, userID, name, per100); err != nil {
		return nil, fmt.Errorf("upsert food %q: %w", name, err)
	}
	return &domain.Food{UserID: userID, Name: name, Per100: per100}, nil
}

// List returns the user's foods ordered by name.
func (s *FoodService) List(ctx context.Context, userID int64) ([]domain.Food, error) {
	return s.repo.ListFoods(ctx, userID)
}

// EnsureSeeded adds DefaultFoods when the catalog is empty. The check is
// emptiness only, so a catalog emptied later is seeded again. Reports
// whether seeding happened.
func (s *FoodService) EnsureSeeded(ctx context.Context, userID int64) (bool, error) {
	foods, err := s.repo.ListFoods(ctx, userID)
	if err != nil {
		return false, err
	}
	if len(foods) > 0 {
		return false, nil
	}
	for _, f := range DefaultFoods {
		if err := s.repo.UpsertFood(ctx, userID, f.Name, f.Per100); err != nil {
			return false, fmt.Errorf("seed food %q: %w", f.Name, err)
		}
	}
	return true, nil
}

// Catalog lists the user's foods, seeding the defaults first if empty.
func (s *FoodService) Catalog(ctx context.Context, userID int64) ([]domain.Food, error) {
	if _, err := s.EnsureSeeded(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListFoods(ctx, userID)
}
