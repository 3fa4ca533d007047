// Package solver finds steady states of the growth recurrences.
//
// Two methods are available:
//
//   - [ClosedForm]: evaluates the fixed point derived symbolically from the
//     model recurrence, then checks it against the recurrence
//   - [Numeric]: bisection on g(k) = k − f(k) over a caller-supplied,
//     strictly positive bracket
//
// The closed form is derived once in [New] and evaluated for every
// parameter set passed to [Solver.Solve].
package solver
