package domain

import "math"

// Nutrients holds the four tracked channels. Depending on context the values
// are either densities per 100 g or absolute amounts.
type Nutrients struct {
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// Add returns the channel-wise sum of n and o.
func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Kcal:    n.Kcal + o.Kcal,
		Protein: n.Protein + o.Protein,
		Carbs:   n.Carbs + o.Carbs,
		Fat:     n.Fat + o.Fat,
	}
}

// Finite reports whether no channel is NaN or infinite.
func (n Nutrients) Finite() bool {
	for _, v := range [...]float64{n.Kcal, n.Protein, n.Carbs, n.Fat} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// NonNegative reports whether every channel is >= 0.
func (n Nutrients) NonNegative() bool {
	return n.Kcal >= 0 && n.Protein >= 0 && n.Carbs >= 0 && n.Fat >= 0
}

// Scale converts per-100 g densities into the absolute amounts contained in
// grams of food. No rounding or clamping is applied.
func Scale(per100 Nutrients, grams float64) Nutrients {
	return Nutrients{
		Kcal:    per100.Kcal * grams / 100,
		Protein: per100.Protein * grams / 100,
		Carbs:   per100.Carbs * grams / 100,
		Fat:     per100.Fat * grams / 100,
	}
}
