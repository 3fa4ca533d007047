package symbolic

import (
	"fmt"
	"strings"
)

// Term is one monomial Coeff·k^Exp of a recurrence.
type Term struct {
	Coeff Expr
	Exp   Expr
}

func (t Term) linear() bool { return isConst(t.Exp, 1) }

func (t Term) String() string {
	switch {
	case t.linear():
		return wrap(t.Coeff, precProduct) + "*k"
	default:
		return wrap(t.Coeff, precProduct) + "*k^" + wrap(t.Exp, precAtom)
	}
}

// Recurrence describes k' = Σ Term.
type Recurrence []Term

// Eval computes the next value of k under env. k must be non-negative.
func (r Recurrence) Eval(env Env, k float64) (float64, error) {
	if k < 0 {
		return 0, fmt.Errorf("%w: negative state k=%g", ErrUndefined, k)
	}
	next := 0.0
	for _, t := range r {
		c, err := t.Coeff.Eval(env)
		if err != nil {
			return 0, err
		}
		e, err := t.Exp.Eval(env)
		if err != nil {
			return 0, err
		}
		kp, err := powReal(k, e)
		if err != nil {
			return 0, fmt.Errorf("%w: k^%g at k=%g", err, e, k)
		}
		next += c * kp
	}
	return checked(next)
}

func (r Recurrence) String() string {
	parts := make([]string, len(r))
	for i, t := range r {
		parts[i] = t.String()
	}
	return "k' = " + strings.Join(parts, " + ")
}

// FixedPoint derives the positive fixed point of r.
//
// Linear terms are collected on the left-hand side; exactly one non-linear
// monomial c·k^e must remain, which gives k* = (c/(1−Σc_lin))^(1/(1−e)).
func FixedPoint(r Recurrence) (Expr, error) {
	var (
		linear    []Expr
		nonlinear []Term
	)
	for _, t := range r {
		if t.linear() {
			linear = append(linear, t.Coeff)
			continue
		}
		nonlinear = append(nonlinear, t)
	}
	if len(nonlinear) != 1 {
		return nil, fmt.Errorf("%w: %d non-linear terms in %s", ErrNotDerivable, len(nonlinear), r)
	}

	t := nonlinear[0]
	lhs := Diff(Const(1), Sum(linear...))
	return Pow(Quo(t.Coeff, lhs), Quo(Const(1), Diff(Const(1), t.Exp))), nil
}
