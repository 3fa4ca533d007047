// Package symbolic holds a small expression algebra for deriving closed-form
// steady states of power-law recurrences.
//
// A recurrence k' = Σ cᵢ·k^eᵢ is described by a [Recurrence] whose
// coefficients and exponents are [Expr] trees over named symbols. Deriving
// the fixed point happens once per model variant; the resulting expression
// is then evaluated against many concrete environments:
//
//	kstar, _ := symbolic.FixedPoint(rec)
//	v, _ := kstar.Eval(symbolic.Env{"s": 0.2, ...})
package symbolic
