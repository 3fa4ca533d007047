// Package analysis provides parameter sweeps and trajectory views over the
// growth recurrences.
//
//   - [Sweep]: steady state across a sequence of values for one parameter
//   - [TransitionCurve]: k versus next-period k over a display domain
//   - [Path]: capital path from an initial stock
//
// # Partial Failure
//
// Sweep never aborts on a bad parameter value. Each [SweepPoint] carries
// its own error, so the caller can report the rest of the sweep:
//
//	points, _ := analysis.Sweep(ctx, s, base, "s", values, 1)
//	for _, p := range points {
//	    if p.Err != nil {
//	        // skip or mark
//	    }
//	}
package analysis
