package symbolic

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrUndefined indicates an expression with no real value at the given point.
	ErrUndefined = errors.New("symbolic: expression undefined")

	// ErrUnbound indicates a symbol missing from the evaluation environment.
	ErrUnbound = errors.New("symbolic: unbound symbol")

	// ErrNotDerivable indicates a recurrence whose fixed point has no closed form here.
	ErrNotDerivable = errors.New("symbolic: fixed point not derivable in closed form")
)

// Env binds symbol names to values.
type Env map[string]float64

type Expr interface {
	Eval(env Env) (float64, error)
	String() string
}

const (
	precSum = iota + 1
	precProduct
	precPow
	precAtom
)

func precedence(e Expr) int {
	switch e.(type) {
	case sum, diff:
		return precSum
	case product, quo:
		return precProduct
	case pow:
		return precPow
	default:
		return precAtom
	}
}

func wrap(e Expr, min int) string {
	if precedence(e) < min {
		return "(" + e.String() + ")"
	}
	return e.String()
}

type Const float64

func (c Const) Eval(Env) (float64, error) { return float64(c), nil }

func (c Const) String() string {
	if c < 0 {
		return "(" + strconv.FormatFloat(float64(c), 'g', -1, 64) + ")"
	}
	return strconv.FormatFloat(float64(c), 'g', -1, 64)
}

type Sym string

func (s Sym) Eval(env Env) (float64, error) {
	v, ok := env[string(s)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnbound, string(s))
	}
	return v, nil
}

func (s Sym) String() string { return string(s) }

func isConst(e Expr, v float64) bool {
	c, ok := e.(Const)
	return ok && float64(c) == v
}

func checked(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrUndefined
	}
	return v, nil
}

type sum []Expr

// Sum adds its operands, folding constants and dropping zeros.
func Sum(xs ...Expr) Expr {
	var folded float64
	terms := make(sum, 0, len(xs))
	for _, x := range xs {
		switch t := x.(type) {
		case Const:
			folded += float64(t)
		case sum:
			terms = append(terms, t...)
		default:
			terms = append(terms, x)
		}
	}
	if folded != 0 {
		terms = append(terms, Const(folded))
	}
	switch len(terms) {
	case 0:
		return Const(0)
	case 1:
		return terms[0]
	}
	return terms
}

func (s sum) Eval(env Env) (float64, error) {
	total := 0.0
	for _, x := range s {
		v, err := x.Eval(env)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return checked(total)
}

func (s sum) String() string {
	parts := make([]string, len(s))
	for i, x := range s {
		parts[i] = wrap(x, precSum)
	}
	return strings.Join(parts, " + ")
}

type product []Expr

// Product multiplies its operands, folding constants and dropping ones.
func Product(xs ...Expr) Expr {
	folded := 1.0
	factors := make(product, 0, len(xs))
	for _, x := range xs {
		switch t := x.(type) {
		case Const:
			folded *= float64(t)
		case product:
			factors = append(factors, t...)
		default:
			factors = append(factors, x)
		}
	}
	if folded == 0 {
		return Const(0)
	}
	if folded != 1 {
		factors = append(product{Const(folded)}, factors...)
	}
	switch len(factors) {
	case 0:
		return Const(1)
	case 1:
		return factors[0]
	}
	return factors
}

func (p product) Eval(env Env) (float64, error) {
	total := 1.0
	for _, x := range p {
		v, err := x.Eval(env)
		if err != nil {
			return 0, err
		}
		total *= v
	}
	return checked(total)
}

func (p product) String() string {
	parts := make([]string, len(p))
	for i, x := range p {
		parts[i] = wrap(x, precProduct)
	}
	return strings.Join(parts, "*")
}

type diff struct{ a, b Expr }

// Diff returns a − b.
func Diff(a, b Expr) Expr {
	if isConst(b, 0) {
		return a
	}
	ca, okA := a.(Const)
	cb, okB := b.(Const)
	if okA && okB {
		return ca - cb
	}
	return diff{a, b}
}

func (d diff) Eval(env Env) (float64, error) {
	a, err := d.a.Eval(env)
	if err != nil {
		return 0, err
	}
	b, err := d.b.Eval(env)
	if err != nil {
		return 0, err
	}
	return checked(a - b)
}

func (d diff) String() string {
	return wrap(d.a, precSum) + " - " + wrap(d.b, precProduct)
}

type quo struct{ num, den Expr }

// Quo returns num / den.
func Quo(num, den Expr) Expr {
	if isConst(den, 1) {
		return num
	}
	if isConst(num, 0) {
		return Const(0)
	}
	cn, okN := num.(Const)
	cd, okD := den.(Const)
	if okN && okD && cd != 0 {
		return cn / cd
	}
	return quo{num, den}
}

func (q quo) Eval(env Env) (float64, error) {
	n, err := q.num.Eval(env)
	if err != nil {
		return 0, err
	}
	d, err := q.den.Eval(env)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("%w: division by zero in %s", ErrUndefined, q)
	}
	return checked(n / d)
}

func (q quo) String() string {
	return wrap(q.num, precProduct) + "/" + wrap(q.den, precAtom)
}

type pow struct{ base, exp Expr }

// Pow returns base^exp.
func Pow(base, exp Expr) Expr {
	if isConst(exp, 1) {
		return base
	}
	if isConst(exp, 0) {
		return Const(1)
	}
	cb, okB := base.(Const)
	ce, okE := exp.(Const)
	if okB && okE {
		if v, err := powReal(float64(cb), float64(ce)); err == nil {
			return Const(v)
		}
	}
	return pow{base, exp}
}

func (p pow) Eval(env Env) (float64, error) {
	b, err := p.base.Eval(env)
	if err != nil {
		return 0, err
	}
	e, err := p.exp.Eval(env)
	if err != nil {
		return 0, err
	}
	v, err := powReal(b, e)
	if err != nil {
		return 0, fmt.Errorf("%w: %g^%g in %s", err, b, e, p)
	}
	return v, nil
}

func (p pow) String() string {
	return wrap(p.base, precAtom) + "^" + wrap(p.exp, precAtom)
}

// powReal is math.Pow restricted to real results.
func powReal(b, e float64) (float64, error) {
	if b < 0 && e != math.Trunc(e) {
		return 0, ErrUndefined
	}
	return checked(math.Pow(b, e))
}
