package symbolic

import (
	"errors"
	"math"
	"testing"
)

func TestFixedPointSingleMonomial(t *testing.T) {
	// k' = c*k^e  ->  k* = c^(1/(1-e))
	rec := Recurrence{{Coeff: Sym("c"), Exp: Sym("e")}}
	kstar, err := FixedPoint(rec)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}

	env := Env{"c": 2, "e": 0.5}
	k, err := kstar.Eval(env)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if math.Abs(k-4) > 1e-12 {
		t.Errorf("expected 4, got %f", k)
	}

	next, err := rec.Eval(env, k)
	if err != nil {
		t.Fatalf("recurrence eval failed: %v", err)
	}
	if math.Abs(next-k) > 1e-12 {
		t.Errorf("not a fixed point: f(%f) = %f", k, next)
	}
}

func TestFixedPointWithLinearTerm(t *testing.T) {
	// k' = a*k^0.5 + b*k
	rec := Recurrence{
		{Coeff: Sym("a"), Exp: Const(0.5)},
		{Coeff: Sym("b"), Exp: Const(1)},
	}
	kstar, err := FixedPoint(rec)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}

	env := Env{"a": 1, "b": 0.5}
	k, err := kstar.Eval(env)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	// k(1-b) = a*sqrt(k) -> k = (a/(1-b))^2 = 4
	if math.Abs(k-4) > 1e-12 {
		t.Errorf("expected 4, got %f", k)
	}
}

func TestFixedPointNotDerivable(t *testing.T) {
	tests := []struct {
		name string
		rec  Recurrence
	}{
		{"linear only", Recurrence{{Coeff: Sym("a"), Exp: Const(1)}}},
		{"two monomials", Recurrence{
			{Coeff: Sym("a"), Exp: Const(0.3)},
			{Coeff: Sym("b"), Exp: Const(0.6)},
		}},
		{"empty", Recurrence{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FixedPoint(tt.rec); !errors.Is(err, ErrNotDerivable) {
				t.Errorf("expected ErrNotDerivable, got %v", err)
			}
		})
	}
}

func TestRecurrenceEvalNegativeState(t *testing.T) {
	rec := Recurrence{{Coeff: Const(1), Exp: Const(0.5)}}
	if _, err := rec.Eval(Env{}, -1); !errors.Is(err, ErrUndefined) {
		t.Errorf("expected ErrUndefined, got %v", err)
	}
}

func TestRecurrenceString(t *testing.T) {
	rec := Recurrence{
		{Coeff: Sym("a"), Exp: Sym("e")},
		{Coeff: Sym("b"), Exp: Const(1)},
	}
	want := "k' = a*k^e + b*k"
	if got := rec.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
