package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/growthlab/internal/growth"
)

// PathPoint is the state of the economy in period T. A is total factor
// productivity, constant B for the basic variant.
type PathPoint struct {
	T int     `json:"t"`
	K float64 `json:"k"`
	Y float64 `json:"y"`
	A float64 `json:"a"`
}

// Path iterates the recurrence from k0 and returns periods+1 points,
// starting with period 0.
func Path(m growth.Model, k0 float64, periods int) ([]PathPoint, error) {
	if periods < 0 {
		return nil, fmt.Errorf("periods must be non-negative, got %d", periods)
	}

	path := make([]PathPoint, 0, periods+1)
	k := k0
	for t := 0; t <= periods; t++ {
		next, y, err := m.Step(k)
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", t, err)
		}
		a, _ := growth.Productivity(m, k)
		path = append(path, PathPoint{T: t, K: k, Y: y, A: a})
		k = next
	}
	return path, nil
}

// PeriodsToConverge returns the first period whose capital is within a
// relative tol of kStar, or -1 if the path never gets there.
func PeriodsToConverge(path []PathPoint, kStar, tol float64) int {
	for _, p := range path {
		if math.Abs(p.K-kStar) <= tol*math.Abs(kStar) {
			return p.T
		}
	}
	return -1
}
