package domain

const gramsPerOunce = 28.349523125

// ConvertMass converts a mass value between "g" and "oz".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertMass(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == "oz" && to == "g" {
		return v * gramsPerOunce
	}
	if from == "g" && to == "oz" {
		return v / gramsPerOunce
	}
	return v
}

// ValidMassUnit reports whether unit is one ConvertMass understands.
func ValidMassUnit(unit string) bool {
	return unit == "g" || unit == "oz"
}
