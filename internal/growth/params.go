package growth

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/growthlab/internal/symbolic"
)

// Symbol names used for parameters in symbolic expressions and sweeps.
const (
	SymB     = "B"
	SymS     = "s"
	SymN     = "n"
	SymAlpha = "alpha"
	SymDelta = "delta"
	SymPhi   = "phi"
)

type Variant int

const (
	Basic Variant = iota
	Externality
)

func (v Variant) String() string {
	switch v {
	case Basic:
		return "basic"
	case Externality:
		return "externality"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

func (v Variant) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "basic", "":
		return Basic, nil
	case "externality":
		return Externality, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
}

// Params is the exogenous parameter set. Delta is read by the basic
// variant only, Phi by the externality variant only.
type Params struct {
	B     float64 `json:"B"`
	S     float64 `json:"s"`
	N     float64 `json:"n"`
	Alpha float64 `json:"alpha"`
	Delta float64 `json:"delta"`
	Phi   float64 `json:"phi"`
}

// Validate checks the constraints the given variant depends on.
func (p Params) Validate(v Variant) error {
	for _, f := range []struct {
		name string
		val  float64
	}{{SymB, p.B}, {SymS, p.S}, {SymN, p.N}, {SymAlpha, p.Alpha}} {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return domainErr(f.name, f.val, "must be finite")
		}
	}
	if p.B <= 0 {
		return domainErr(SymB, p.B, "productivity scale must be > 0")
	}
	if p.S <= 0 || p.S >= 1 {
		return domainErr(SymS, p.S, "savings rate must lie in (0,1)")
	}
	if p.N <= -1 {
		return domainErr(SymN, p.N, "population growth must be > -1")
	}
	if p.Alpha <= 0 || p.Alpha >= 1 {
		return domainErr(SymAlpha, p.Alpha, "capital elasticity must lie in (0,1)")
	}

	switch v {
	case Basic:
		if math.IsNaN(p.Delta) || p.Delta < 0 || p.Delta > 1 {
			return domainErr(SymDelta, p.Delta, "depreciation must lie in [0,1]")
		}
		if p.Delta+p.N <= 0 {
			return domainErr(SymDelta, p.Delta, "delta+n must be > 0 for a positive steady state")
		}
	case Externality:
		if math.IsNaN(p.Phi) || p.Phi <= 0 || p.Phi >= 1 {
			return domainErr(SymPhi, p.Phi, "externality exponent must lie in (0,1)")
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownVariant, v)
	}
	return nil
}

// With returns a copy of p with the named parameter replaced.
func (p Params) With(name string, value float64) (Params, error) {
	switch name {
	case SymB:
		p.B = value
	case SymS:
		p.S = value
	case SymN:
		p.N = value
	case SymAlpha:
		p.Alpha = value
	case SymDelta:
		p.Delta = value
	case SymPhi:
		p.Phi = value
	default:
		return p, fmt.Errorf("%w: %q (known: %s)", ErrUnknownParam, name, strings.Join(ParamNames(), ", "))
	}
	return p, nil
}

// Get returns the value of the named parameter.
func (p Params) Get(name string) (float64, error) {
	env := p.Env()
	v, ok := env[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return v, nil
}

func (p Params) Env() symbolic.Env {
	return symbolic.Env{
		SymB:     p.B,
		SymS:     p.S,
		SymN:     p.N,
		SymAlpha: p.Alpha,
		SymDelta: p.Delta,
		SymPhi:   p.Phi,
	}
}

func ParamNames() []string {
	names := []string{SymB, SymS, SymN, SymAlpha, SymDelta, SymPhi}
	sort.Strings(names)
	return names
}
