package analysis

import (
	"fmt"

	"github.com/san-kum/growthlab/internal/growth"
)

// Display domain used by the transition diagram when none is given.
const (
	DefaultKMin   = 0.0
	DefaultKMax   = 15.0
	DefaultPoints = 61
)

// TransitionPoint is one sample of the transition diagram. The 45° reference
// line is Next == K.
type TransitionPoint struct {
	K    float64 `json:"k"`
	Next float64 `json:"next"`
	Y    float64 `json:"y"`
}

// TransitionCurve samples the recurrence on points evenly spaced values of k
// in [kMin, kMax].
func TransitionCurve(m growth.Model, kMin, kMax float64, points int) ([]TransitionPoint, error) {
	if points < 2 {
		return nil, fmt.Errorf("transition curve needs at least 2 points, got %d", points)
	}
	if kMin < 0 {
		return nil, &growth.DomainError{Field: "k_min", Value: kMin, Reason: "capital per worker must be non-negative"}
	}
	if kMax <= kMin {
		return nil, fmt.Errorf("k_max %g must exceed k_min %g", kMax, kMin)
	}

	grid := Linspace(kMin, kMax, points)
	curve := make([]TransitionPoint, 0, points)
	for _, k := range grid {
		next, y, err := m.Step(k)
		if err != nil {
			return nil, err
		}
		curve = append(curve, TransitionPoint{K: k, Next: next, Y: y})
	}
	return curve, nil
}

// Crossings returns the indices where the curve crosses the 45° line, i.e.
// where Next−K changes sign between consecutive samples or is exactly zero.
func Crossings(curve []TransitionPoint) []int {
	var idx []int
	for i := range curve {
		gap := curve[i].Next - curve[i].K
		if gap == 0 {
			idx = append(idx, i)
			continue
		}
		if i > 0 {
			prev := curve[i-1].Next - curve[i-1].K
			if prev != 0 && (prev < 0) != (gap < 0) {
				idx = append(idx, i)
			}
		}
	}
	return idx
}
