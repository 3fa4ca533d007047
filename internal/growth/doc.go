// Package growth provides the parameter set and capital-accumulation
// recurrences of the Solow growth model.
//
// Two variants are supported:
//
//   - [Basic]: Y = B·K^α·L^(1−α), k' = (s·B·k^α + (1−δ)·k) / (1+n)
//   - [Externality]: A = B·k^(φ(1−α)), k' = (s·B/(1+n))·k^(α+φ(1−α))
//
// # Example
//
//	p := growth.Params{B: 10, S: 0.2, N: 0.02, Alpha: 1.0 / 3, Delta: 1}
//	m, err := growth.New(growth.Basic, p)
//	next, y, err := m.Step(1.0)
//
// # Validation
//
// [New] validates the parameter set once. Models hold a copy of their
// parameters and are safe for concurrent use.
package growth
