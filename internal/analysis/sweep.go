package analysis

import (
	"context"
	"encoding/json"

	"github.com/san-kum/growthlab/internal/growth"
	"github.com/san-kum/growthlab/internal/solver"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// SteadyStateSolver is satisfied by *solver.Solver.
type SteadyStateSolver interface {
	Solve(p growth.Params) (*solver.SteadyState, error)
}

// SweepPoint is the steady state for one swept parameter value. Err is set
// when that value could not be solved; K and Y are zero in that case.
type SweepPoint struct {
	Value float64
	K     float64
	Y     float64
	Err   error
}

func (p SweepPoint) OK() bool { return p.Err == nil }

func (p SweepPoint) MarshalJSON() ([]byte, error) {
	out := struct {
		Value float64  `json:"value"`
		K     *float64 `json:"k,omitempty"`
		Y     *float64 `json:"y,omitempty"`
		Error string   `json:"error,omitempty"`
	}{Value: p.Value}
	if p.Err != nil {
		out.Error = p.Err.Error()
	} else {
		out.K, out.Y = &p.K, &p.Y
	}
	return json.Marshal(out)
}

// Sweep solves the steady state for base with param replaced by each of
// values, preserving order. With workers > 1 the values are solved
// concurrently. The returned error is non-nil only when param is unknown.
func Sweep(ctx context.Context, s SteadyStateSolver, base growth.Params, param string, values []float64, workers int) ([]SweepPoint, error) {
	if _, err := base.Get(param); err != nil {
		return nil, err
	}

	points := make([]SweepPoint, len(values))

	solveAt := func(ctx context.Context, i int) SweepPoint {
		pt := SweepPoint{Value: values[i]}
		if err := ctx.Err(); err != nil {
			pt.Err = err
			return pt
		}
		p, err := base.With(param, values[i])
		if err != nil {
			pt.Err = err
			return pt
		}
		ss, err := s.Solve(p)
		if err != nil {
			pt.Err = err
			return pt
		}
		pt.K, pt.Y = ss.K, ss.Y
		return pt
	}

	if workers <= 1 {
		for i := range values {
			points[i] = solveAt(ctx, i)
		}
		return points, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range values {
		i := i
		g.Go(func() error {
			points[i] = solveAt(gctx, i)
			return nil
		})
	}
	_ = g.Wait()

	return points, nil
}

// Failed counts points that carry an error.
func Failed(points []SweepPoint) int {
	n := 0
	for _, p := range points {
		if p.Err != nil {
			n++
		}
	}
	return n
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}
