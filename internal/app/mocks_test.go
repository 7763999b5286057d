package app_test

import (
	"context"

	"calorietracker/internal/domain"
)

type mockFoodRepo struct {
	upsertFn func(ctx context.Context, userID int64, name string, per100 domain.Nutrients) error
	getFn    func(ctx context.Context, userID int64, name string) (*domain.Food, error)
	listFn   func(ctx context.Context, userID int64) ([]domain.Food, error)
}

func (m *mockFoodRepo) UpsertFood(ctx context.Context, userID int64, name string, per100 domain.Nutrients) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, userID, name, per100)
	}
	return nil
}

func (m *mockFoodRepo) GetFood(ctx context.Context, userID int64, name string) (*domain.Food, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, name)
	}
	return nil, nil
}

func (m *mockFoodRepo) ListFoods(ctx context.Context, userID int64) ([]domain.Food, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

type mockEntryRepo struct {
	addFn    func(ctx context.Context, e domain.Entry) (int64, error)
	delFn    func(ctx context.Context, userID int64, id int64) error
	listFn   func(ctx context.Context, userID int64, day string) ([]domain.Entry, error)
	totalsFn func(ctx context.Context, userID int64, startDay string) ([]domain.DayTotals, error)
}

func (m *mockEntryRepo) AddEntry(ctx context.Context, e domain.Entry) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, e)
	}
	return 1, nil
}

func (m *mockEntryRepo) DeleteEntry(ctx context.Context, userID int64, id int64) error {
	if m.delFn != nil {
		return m.delFn(ctx, userID, id)
	}
	return nil
}

func (m *mockEntryRepo) ListEntriesForDay(ctx context.Context, userID int64, day string) ([]domain.Entry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, day)
	}
	return nil, nil
}

func (m *mockEntryRepo) DailyTotalsSince(ctx context.Context, userID int64, startDay string) ([]domain.DayTotals, error) {
	if m.totalsFn != nil {
		return m.totalsFn(ctx, userID, startDay)
	}
	return nil, nil
}

type mockGoalRepo struct {
	getFn func(ctx context.Context, userID int64) (*domain.Goal, error)
	putFn func(ctx context.Context, g domain.Goal) error
}

func (m *mockGoalRepo) GetGoal(ctx context.Context, userID int64) (*domain.Goal, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockGoalRepo) PutGoal(ctx context.Context, g domain.Goal) error {
	if m.putFn != nil {
		return m.putFn(ctx, g)
	}
	return nil
}
