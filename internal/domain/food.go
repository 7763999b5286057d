package domain

import (
	"context"
	"strings"
)

// Food is a named nutrient-density record owned by one user.
type Food struct {
	UserID int64     `json:"-"`
	Name   string    `json:"name"`
	Per100 Nutrients `json:"per100g"`
}

// NormalizeFoodName is the canonical form under which foods are stored and
// looked up.
func NormalizeFoodName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FoodRepository is the port for food catalog persistence. Names passed in
// are already normalized.
type FoodRepository interface {
	UpsertFood(ctx context.Context, userID int64, name string, per100 Nutrients) error
	GetFood(ctx context.Context, userID int64, name string) (*Food, error)
	ListFoods(ctx context.Context, userID int64) ([]Food, error)
}
