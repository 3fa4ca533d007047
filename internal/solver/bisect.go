package solver

import (
	"fmt"
	"math"

	"github.com/san-kum/growthlab/internal/growth"
)

// Root is a converged bisection result.
type Root struct {
	X          float64
	Residual   float64
	Iterations int
}

// Bisect finds x in [lo, hi] with |g(x)| <= tol. g(lo) and g(hi) must have
// opposite signs and lo must be strictly positive.
func Bisect(g func(float64) (float64, error), lo, hi, tol float64, maxIter int) (Root, error) {
	if !(lo > 0) {
		return Root{}, &growth.DomainError{Field: "lo", Value: lo, Reason: "bracket must be strictly positive"}
	}
	if !(hi > lo) {
		return Root{}, &growth.DomainError{Field: "hi", Value: hi, Reason: fmt.Sprintf("bracket upper bound must exceed lo=%g", lo)}
	}

	gLo, err := g(lo)
	if err != nil {
		return Root{}, err
	}
	if math.Abs(gLo) <= tol {
		return Root{X: lo, Residual: gLo}, nil
	}
	gHi, err := g(hi)
	if err != nil {
		return Root{}, err
	}
	if math.Abs(gHi) <= tol {
		return Root{X: hi, Residual: gHi}, nil
	}
	if math.Signbit(gLo) == math.Signbit(gHi) {
		return Root{}, &growth.DomainError{
			Field:  "bracket",
			Value:  lo,
			Reason: fmt.Sprintf("no sign change on [%g, %g] (g=%g, %g)", lo, hi, gLo, gHi),
		}
	}

	mid, gMid := lo, gLo
	for i := 1; i <= maxIter; i++ {
		mid = lo + (hi-lo)/2
		gMid, err = g(mid)
		if err != nil {
			return Root{}, err
		}
		if math.Abs(gMid) <= tol {
			return Root{X: mid, Residual: gMid, Iterations: i}, nil
		}
		if math.Signbit(gMid) == math.Signbit(gLo) {
			lo, gLo = mid, gMid
		} else {
			hi = mid
		}
	}

	return Root{}, &growth.ConvergenceError{Iterations: maxIter, Last: mid, Residual: gMid}
}
