package app_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"calorietracker/internal/adapter/memory"
	"calorietracker/internal/app"
	"calorietracker/internal/domain"
)

func TestFoodUpsert_Validation(t *testing.T) {
	svc := app.NewFoodService(&mockFoodRepo{
		upsertFn: func(_ context.Context, _ int64, _ string, _ domain.Nutrients) error {
			t.Error("repository should not be called")
			return nil
		},
	})

	tests := []struct {
		name   string
		food   string
		per100 domain.Nutrients
		want   error
	}{
		{"empty name", "", domain.Nutrients{Kcal: 1}, app.ErrEmptyFoodName},
		{"blank name", "   ", domain.Nutrients{Kcal: 1}, app.ErrEmptyFoodName},
		{"negative kcal", "x", domain.Nutrients{Kcal: -1}, app.ErrInvalidNutrients},
		{"negative fat", "x", domain.Nutrients{Fat: -0.5}, app.ErrInvalidNutrients},
		{"infinite kcal", "x", domain.Nutrients{Kcal: math.Inf(1)}, app.ErrInvalidNutrients},
		{"NaN protein", "x", domain.Nutrients{Protein: math.NaN()}, app.ErrInvalidNutrients},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upsert(context.Background(), 1, tc.food, tc.per100)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestFoodUpsert_NormalizesName(t *testing.T) {
	var stored string
	svc := app.NewFoodService(&mockFoodRepo{
		upsertFn: func(_ context.Context, _ int64, name string, _ domain.Nutrients) error {
			stored = name
			return nil
		},
	})
	f, err := svc.Upsert(context.Background(), 1, "  Greek Yogurt ", domain.Nutrients{Kcal: 59})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored != "greek yogurt" || f.Name != "greek yogurt" {
		t.Fatalf("expected normalized name, got stored=%q returned=%q", stored, f.Name)
	}
}

func TestFoodUpsert_ZeroDensityAllowed(t *testing.T) {
	svc := app.NewFoodService(memory.New())
	if _, err := svc.Upsert(context.Background(), 1, "water", domain.Nutrients{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFoodUpsert_RepoError(t *testing.T) {
	svc := app.NewFoodService(&mockFoodRepo{
		upsertFn: func(_ context.Context, _ int64, _ string, _ domain.Nutrients) error {
			return errors.New("db down")
		},
	})
	if _, err := svc.Upsert(context.Background(), 1, "rice", domain.Nutrients{}); err == nil {
		t.Fatal("expected error from repo")
	}
}

func TestFoodUpsert_TwiceKeepsOneWithLatestValues(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	svc := app.NewFoodService(db)

	if _, err := svc.Upsert(ctx, 1, "Tofu", domain.Nutrients{Kcal: 76, Protein: 8}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Upsert(ctx, 1, "tofu", domain.Nutrients{Kcal: 144, Protein: 17}); err != nil {
		t.Fatal(err)
	}

	foods, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(foods) != 1 {
		t.Fatalf("expected exactly one definition, got %d", len(foods))
	}
	if foods[0].Per100.Kcal != 144 || foods[0].Per100.Protein != 17 {
		t.Fatalf("expected latest values, got %+v", foods[0].Per100)
	}
}

func TestEnsureSeeded_EmptyCatalog(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	svc := app.NewFoodService(db)

	seeded, err := svc.EnsureSeeded(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seeded {
		t.Fatal("expected seeding on empty catalog")
	}

	foods, _ := svc.List(ctx, 1)
	want := []string{"apple", "banana", "chicken", "dal", "egg", "milk", "oats", "paneer", "rice", "roti"}
	if len(foods) != len(want) {
		t.Fatalf("expected %d foods, got %d", len(want), len(foods))
	}
	for i, name := range want {
		if foods[i].Name != name {
			t.Errorf("foods[%d] = %q; want %q", i, foods[i].Name, name)
		}
	}

	seeded, err = svc.EnsureSeeded(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seeded {
		t.Fatal("expected no second seeding")
	}
	foods, _ = svc.List(ctx, 1)
	if len(foods) != 10 {
		t.Fatalf("expected 10 foods after second call, got %d", len(foods))
	}

	// Other accounts are seeded independently.
	other, _ := svc.List(ctx, 2)
	if len(other) != 0 {
		t.Fatalf("expected other account untouched, got %d foods", len(other))
	}
}

func TestEnsureSeeded_NonEmptyCatalogUntouched(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	svc := app.NewFoodService(db)
	_, _ = svc.Upsert(ctx, 1, "kimchi", domain.Nutrients{Kcal: 15})

	foods, err := svc.Catalog(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(foods) != 1 || foods[0].Name != "kimchi" {
		t.Fatalf("expected only kimchi, got %+v", foods)
	}
}

func TestEnsureSeeded_ReseedsWhenEmptiedAgain(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	svc := app.NewFoodService(db)

	if _, err := svc.Catalog(ctx, 1); err != nil {
		t.Fatal(err)
	}
	for _, f := range app.DefaultFoods {
		db.RemoveFood(1, f.Name)
	}
	seeded, err := svc.EnsureSeeded(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !seeded {
		t.Fatal("expected reseeding after the catalog was emptied")
	}
}

func TestCatalog_SeedsAndLists(t *testing.T) {
	svc := app.NewFoodService(memory.New())
	foods, err := svc.Catalog(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(foods) != 10 || foods[0].Name != "apple" {
		t.Fatalf("expected seeded catalog, got %+v", foods)
	}
}

func TestEnsureSeeded_ListError(t *testing.T) {
	svc := app.NewFoodService(&mockFoodRepo{
		listFn: func(_ context.Context, _ int64) ([]domain.Food, error) {
			return nil, errors.New("db down")
		},
	})
	if _, err := svc.Catalog(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
}
