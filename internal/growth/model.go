package growth

import (
	"math"

	"github.com/san-kum/growthlab/internal/symbolic"
)

// Model is one variant of the capital-accumulation recurrence bound to a
// validated parameter set.
type Model interface {
	Variant() Variant
	Params() Params
	// Step returns next-period capital per worker and current output per worker.
	Step(k float64) (next, y float64, err error)
	// Recurrence describes Step symbolically over the parameter symbols.
	Recurrence() symbolic.Recurrence
}

// New validates p for the variant and returns the model.
func New(v Variant, p Params) (Model, error) {
	if err := p.Validate(v); err != nil {
		return nil, err
	}
	switch v {
	case Externality:
		return &externality{p: p}, nil
	default:
		return &basic{p: p}, nil
	}
}

// Recurrence returns the symbolic recurrence of a variant without binding
// any parameter values.
func Recurrence(v Variant) symbolic.Recurrence {
	switch v {
	case Externality:
		return externalityRecurrence()
	default:
		return basicRecurrence()
	}
}

func checkState(k float64) error {
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return domainErr("k", k, "capital per worker must be finite")
	}
	if k < 0 {
		return domainErr("k", k, "capital per worker must be non-negative")
	}
	return nil
}

type basic struct {
	p Params
}

func (m *basic) Variant() Variant { return Basic }
func (m *basic) Params() Params   { return m.p }

func (m *basic) Step(k float64) (float64, float64, error) {
	if err := checkState(k); err != nil {
		return 0, 0, err
	}
	p := m.p
	y := p.B * math.Pow(k, p.Alpha)
	next := (p.S*y + (1-p.Delta)*k) / (1 + p.N)
	return next, y, nil
}

func (m *basic) Recurrence() symbolic.Recurrence { return basicRecurrence() }

func basicRecurrence() symbolic.Recurrence {
	pop := symbolic.Sum(symbolic.Const(1), symbolic.Sym(SymN))
	return symbolic.Recurrence{
		{
			Coeff: symbolic.Quo(symbolic.Product(symbolic.Sym(SymS), symbolic.Sym(SymB)), pop),
			Exp:   symbolic.Sym(SymAlpha),
		},
		{
			Coeff: symbolic.Quo(symbolic.Diff(symbolic.Const(1), symbolic.Sym(SymDelta)), pop),
			Exp:   symbolic.Const(1),
		},
	}
}

type externality struct {
	p Params
}

func (m *externality) Variant() Variant { return Externality }
func (m *externality) Params() Params   { return m.p }

// Productivity returns A = B·k^(φ(1−α)).
func (m *externality) Productivity(k float64) float64 {
	return m.p.B * math.Pow(k, m.p.Phi*(1-m.p.Alpha))
}

func (m *externality) Step(k float64) (float64, float64, error) {
	if err := checkState(k); err != nil {
		return 0, 0, err
	}
	p := m.p
	y := m.Productivity(k) * math.Pow(k, p.Alpha)
	next := p.S * y / (1 + p.N)
	return next, y, nil
}

func (m *externality) Recurrence() symbolic.Recurrence { return externalityRecurrence() }

func externalityRecurrence() symbolic.Recurrence {
	alpha := symbolic.Sym(SymAlpha)
	return symbolic.Recurrence{
		{
			Coeff: symbolic.Quo(
				symbolic.Product(symbolic.Sym(SymS), symbolic.Sym(SymB)),
				symbolic.Sum(symbolic.Const(1), symbolic.Sym(SymN)),
			),
			Exp: symbolic.Sum(alpha, symbolic.Product(symbolic.Sym(SymPhi), symbolic.Diff(symbolic.Const(1), alpha))),
		},
	}
}

// Productivity reports total factor productivity at k for models that make
// it depend on capital. ok is false for the basic variant.
func Productivity(m Model, k float64) (a float64, ok bool) {
	if e, isExt := m.(*externality); isExt {
		return e.Productivity(k), true
	}
	return m.Params().B, false
}
