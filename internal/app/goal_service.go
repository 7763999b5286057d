package app

import (
	"context"
	"errors"
	"fmt"

	"calorietracker/internal/domain"
)

// ErrInvalidGoal indicates a negative goal or percentage.
var ErrInvalidGoal = errors.New("goal values must be >= 0")

// GoalService encapsulates goal configuration use cases.
type GoalService struct {
	repo domain.GoalRepository
}

// NewGoalService creates a GoalService backed by the given repository.
func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

// Get returns the user's goal, storing the defaults first if none exists.
func (s *GoalService) Get(ctx context.Context, userID int64) (*domain.Goal, error) {
	g, err := s.repo.GetGoal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	if g != nil {
		return g, nil
	}

	def := domain.DefaultGoal(userID)
	if err := s.repo.PutGoal(ctx, def); err != nil {
		return nil, fmt.Errorf("create default goal: %w", err)
	}
	return &def, nil
}

// Replace overwrites the user's goal. Percentages are not required to sum
// to 100.
func (s *GoalService) Replace(ctx context.Context, userID int64, g domain.Goal) (*domain.Goal, error) {
	if g.DailyKcal < 0 || g.Breakfast < 0 || g.Lunch < 0 || g.Dinner < 0 || g.Snack < 0 {
		return nil, ErrInvalidGoal
	}
	g.UserID = userID
	if err := s.repo.PutGoal(ctx, g); err != nil {
		return nil, fmt.Errorf("put goal: %w", err)
	}
	return &g, nil
}
