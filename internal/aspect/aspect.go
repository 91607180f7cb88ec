// Package aspect decides whether two ecliptic longitudes form one of
// the four recognized angular relationships.
package aspect

import (
	"math"

	"Astrale/internal/model"
)

// Orb is the maximum deviation from an aspect's nominal angle for the
// aspect to still count. Tuning parameter.
const Orb = 3.0

// Nominal angles are scanned in this order; with non-overlapping
// angles and a small orb at most one can match.
var aspects = []struct {
	Type  model.AspectType
	Angle float64
}{
	{model.AspectConjunction, 0},
	{model.AspectOpposition, 180},
	{model.AspectTrine, 120},
	{model.AspectSquare, 90},
}

// Match tests longitudes a and b (degrees, [0,360)) against the four
// aspect types. Returns the first type within orb and its exactness.
// A false second return means no aspect, a normal outcome, not an error.
func Match(a, b float64) (model.AspectMatch, bool) {
	sep := math.Abs(a - b)
	if sep > 180 {
		sep = 360 - sep
	}
	for _, asp := range aspects {
		exactness := math.Abs(sep - asp.Angle)
		if exactness <= Orb {
			return model.AspectMatch{Type: asp.Type, Exactness: exactness}, true
		}
	}
	return model.AspectMatch{}, false
}
