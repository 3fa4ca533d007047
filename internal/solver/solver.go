package solver

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/growthlab/internal/growth"
	"github.com/san-kum/growthlab/internal/symbolic"
)

type Method int

const (
	ClosedForm Method = iota
	Numeric
)

func (m Method) String() string {
	switch m {
	case ClosedForm:
		return "closed"
	case Numeric:
		return "numeric"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

func (m Method) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "closed", "closed-form", "":
		return ClosedForm, nil
	case "numeric", "bisect":
		return Numeric, nil
	default:
		return 0, fmt.Errorf("unknown solver method: %s", name)
	}
}

type Bracket struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// DefaultBracket is the search interval used when none is configured.
var DefaultBracket = Bracket{Lo: 0.1, Hi: 1000}

const (
	DefaultTolerance = 1e-10
	DefaultMaxIter   = 200
)

type Config struct {
	Method    Method
	Bracket   Bracket
	Tolerance float64
	MaxIter   int
}

func DefaultConfig() Config {
	return Config{
		Method:    ClosedForm,
		Bracket:   DefaultBracket,
		Tolerance: DefaultTolerance,
		MaxIter:   DefaultMaxIter,
	}
}

type SteadyState struct {
	Variant    growth.Variant `json:"variant"`
	Params     growth.Params  `json:"params"`
	K          float64        `json:"k"`
	Y          float64        `json:"y"`
	Method     Method         `json:"method"`
	Iterations int            `json:"iterations"`
	Residual   float64        `json:"residual"`
}

type Solver struct {
	variant growth.Variant
	cfg     Config
	rec     symbolic.Recurrence
	kstar   symbolic.Expr
}

// New derives the closed-form steady state of the variant once.
func New(v growth.Variant, cfg Config) (*Solver, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	rec := growth.Recurrence(v)
	kstar, err := symbolic.FixedPoint(rec)
	if err != nil && cfg.Method == ClosedForm {
		return nil, fmt.Errorf("derive %s steady state: %w", v, err)
	}

	return &Solver{variant: v, cfg: cfg, rec: rec, kstar: kstar}, nil
}

func validateConfig(cfg Config) error {
	if cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", cfg.Tolerance)
	}
	if cfg.MaxIter <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", cfg.MaxIter)
	}
	if cfg.Method == Numeric && !(cfg.Bracket.Hi > cfg.Bracket.Lo) {
		return fmt.Errorf("bracket [%g, %g] is empty", cfg.Bracket.Lo, cfg.Bracket.Hi)
	}
	return nil
}

func (s *Solver) Variant() growth.Variant         { return s.variant }
func (s *Solver) Config() Config                  { return s.cfg }
func (s *Solver) Recurrence() symbolic.Recurrence { return s.rec }

// Expression returns the derived closed form, or nil if none exists.
func (s *Solver) Expression() symbolic.Expr { return s.kstar }

// Solve computes the steady state of p with the configured method.
func (s *Solver) Solve(p growth.Params) (*SteadyState, error) {
	if s.cfg.Method == Numeric {
		return s.Numeric(p, s.cfg.Bracket)
	}
	return s.ClosedForm(p)
}

// ClosedForm evaluates the derived expression at p and verifies that the
// result is a fixed point of the recurrence.
func (s *Solver) ClosedForm(p growth.Params) (*SteadyState, error) {
	if s.kstar == nil {
		return nil, fmt.Errorf("%s: %w", s.variant, symbolic.ErrNotDerivable)
	}
	m, err := growth.New(s.variant, p)
	if err != nil {
		return nil, err
	}

	k, err := s.kstar.Eval(p.Env())
	if err != nil {
		if errors.Is(err, symbolic.ErrUndefined) {
			return nil, &growth.DomainError{Field: "k*", Value: math.NaN(), Reason: err.Error()}
		}
		return nil, err
	}
	if !(k > 0) {
		return nil, &growth.DomainError{Field: "k*", Value: k, Reason: "steady state must be positive"}
	}

	next, y, err := m.Step(k)
	if err != nil {
		return nil, err
	}
	residual := k - next
	if math.Abs(residual) > s.cfg.Tolerance*math.Max(1, k) {
		return nil, &growth.ConvergenceError{Last: k, Residual: residual}
	}

	return &SteadyState{
		Variant:  s.variant,
		Params:   p,
		K:        k,
		Y:        y,
		Method:   ClosedForm,
		Residual: residual,
	}, nil
}

// Numeric bisects g(k) = k − f(k) over br.
func (s *Solver) Numeric(p growth.Params, br Bracket) (*SteadyState, error) {
	m, err := growth.New(s.variant, p)
	if err != nil {
		return nil, err
	}

	root, err := Bisect(Residual(m), br.Lo, br.Hi, s.cfg.Tolerance, s.cfg.MaxIter)
	if err != nil {
		return nil, err
	}

	_, y, err := m.Step(root.X)
	if err != nil {
		return nil, err
	}

	return &SteadyState{
		Variant:    s.variant,
		Params:     p,
		K:          root.X,
		Y:          y,
		Method:     Numeric,
		Iterations: root.Iterations,
		Residual:   root.Residual,
	}, nil
}

// Residual returns g(k) = k − f(k) for the model.
func Residual(m growth.Model) func(float64) (float64, error) {
	return func(k float64) (float64, error) {
		next, _, err := m.Step(k)
		if err != nil {
			return 0, err
		}
		return k - next, nil
	}
}
