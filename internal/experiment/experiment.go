package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/growthlab/internal/analysis"
	"github.com/san-kum/growthlab/internal/config"
	"github.com/san-kum/growthlab/internal/growth"
	"github.com/san-kum/growthlab/internal/logger"
	"github.com/san-kum/growthlab/internal/solver"
)

// Experiment binds one configuration to a model and a solver.
type Experiment struct {
	cfg      *config.Config
	log      *logger.Logger
	registry *Registry
	params   growth.Params
	model    growth.Model
	solver   *solver.Solver
}

func New(cfg *config.Config, log *logger.Logger) *Experiment {
	if log == nil {
		log = logger.Nop()
	}
	return &Experiment{cfg: cfg, log: log, registry: NewRegistry()}
}

func (e *Experiment) Setup() error {
	variant, err := e.cfg.GetVariant()
	if err != nil {
		return err
	}

	e.params = e.cfg.GrowthParams()
	e.model, err = e.registry.GetModel(variant.String(), e.params)
	if err != nil {
		return err
	}

	sc, err := e.cfg.SolverConfig()
	if err != nil {
		return err
	}
	e.solver, err = solver.New(variant, sc)
	if err != nil {
		return err
	}

	e.log = e.log.With("variant", variant.String(), "method", sc.Method.String())
	e.log.Debug("experiment ready", "params", e.params)
	return nil
}

func (e *Experiment) ready() error {
	if e.solver == nil {
		return fmt.Errorf("experiment not setup")
	}
	return nil
}

func (e *Experiment) Config() *config.Config { return e.cfg }
func (e *Experiment) Model() growth.Model     { return e.model }
func (e *Experiment) Solver() *solver.Solver  { return e.solver }

func (e *Experiment) SteadyState() (*solver.SteadyState, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	ss, err := e.solver.Solve(e.params)
	if err != nil {
		return nil, err
	}
	e.log.Debug("steady state", "k", ss.K, "y", ss.Y, "iterations", ss.Iterations, "residual", ss.Residual)
	return ss, nil
}

// Sweep runs the configured sweep. Failed points are logged and returned
// in place.
func (e *Experiment) Sweep(ctx context.Context) ([]analysis.SweepPoint, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	sc := e.cfg.Sweep
	points, err := analysis.Sweep(ctx, e.solver, e.params, sc.Param, sc.Values, sc.Workers)
	if err != nil {
		return nil, err
	}
	for _, p := range points {
		if p.Err != nil {
			e.log.Warn("sweep point failed", "param", sc.Param, "value", p.Value, "error", p.Err)
		}
	}
	e.log.Info("sweep finished", "param", sc.Param, "points", len(points), "failed", analysis.Failed(points))
	return points, nil
}

func (e *Experiment) Transition() ([]analysis.TransitionPoint, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	tc := e.cfg.Transition
	return analysis.TransitionCurve(e.model, tc.KMin, tc.KMax, tc.Points)
}

// PathReport is a capital path together with the steady state it approaches.
type PathReport struct {
	SteadyState float64              `json:"steady_state"`
	Converged   int                  `json:"converged_at"`
	Points      []analysis.PathPoint `json:"points"`
}

// ConvergenceTolerance is the relative gap at which a path counts as converged.
const ConvergenceTolerance = 1e-3

func (e *Experiment) Path() (*PathReport, error) {
	ss, err := e.SteadyState()
	if err != nil {
		return nil, err
	}
	pc := e.cfg.Path
	points, err := analysis.Path(e.model, pc.K0, pc.Periods)
	if err != nil {
		return nil, err
	}
	return &PathReport{
		SteadyState: ss.K,
		Converged:   analysis.PeriodsToConverge(points, ss.K, ConvergenceTolerance),
		Points:      points,
	}, nil
}

// Derivation is the symbolic recurrence and its closed-form steady state.
type Derivation struct {
	Variant     string  `json:"variant"`
	Recurrence  string  `json:"recurrence"`
	SteadyState string  `json:"steady_state"`
	Value       float64 `json:"value"`
}

func (e *Experiment) Derivation() (*Derivation, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	expr := e.solver.Expression()
	if expr == nil {
		return nil, fmt.Errorf("no closed form for %s", e.solver.Variant())
	}
	v, err := expr.Eval(e.params.Env())
	if err != nil {
		return nil, err
	}
	return &Derivation{
		Variant:     e.solver.Variant().String(),
		Recurrence:  e.solver.Recurrence().String(),
		SteadyState: "k* = " + expr.String(),
		Value:       v,
	}, nil
}
