package config

import (
	"fmt"
	"os"

	"github.com/san-kum/growthlab/internal/growth"
	"github.com/san-kum/growthlab/internal/solver"
	"gopkg.in/yaml.v3"
)

const (
	DefaultB       = 10.0
	DefaultS       = 0.2
	DefaultN       = 0.02
	DefaultAlpha   = 1.0 / 3.0
	DefaultDelta   = 1.0
	DefaultPhi     = 0.4
	DefaultKMax    = 15.0
	DefaultPoints  = 61
	DefaultK0      = 1.0
	DefaultPeriods = 50
)

type Config struct {
	Variant    string           `yaml:"variant"`
	Params     ParamsConfig     `yaml:"params"`
	Solver     SolverConfig     `yaml:"solver"`
	Sweep      SweepConfig      `yaml:"sweep"`
	Transition TransitionConfig `yaml:"transition"`
	Path       PathConfig       `yaml:"path"`
}

type ParamsConfig struct {
	B     float64 `yaml:"B"`
	S     float64 `yaml:"s"`
	N     float64 `yaml:"n"`
	Alpha float64 `yaml:"alpha"`
	Delta float64 `yaml:"delta"`
	Phi   float64 `yaml:"phi"`
}

type SolverConfig struct {
	Method    string    `yaml:"method"`
	Bracket   []float64 `yaml:"bracket,flow"`
	Tolerance float64   `yaml:"tolerance"`
	MaxIter   int       `yaml:"max_iter"`
}

type SweepConfig struct {
	Param   string    `yaml:"param"`
	Values  []float64 `yaml:"values,flow"`
	Workers int       `yaml:"workers"`
}

type TransitionConfig struct {
	KMin   float64 `yaml:"k_min"`
	KMax   float64 `yaml:"k_max"`
	Points int     `yaml:"points"`
}

type PathConfig struct {
	K0      float64 `yaml:"k0"`
	Periods int     `yaml:"periods"`
}

func DefaultConfig() *Config {
	return &Config{
		Variant: growth.Basic.String(),
		Params: ParamsConfig{
			B:     DefaultB,
			S:     DefaultS,
			N:     DefaultN,
			Alpha: DefaultAlpha,
			Delta: DefaultDelta,
			Phi:   DefaultPhi,
		},
		Solver: SolverConfig{
			Method:    solver.ClosedForm.String(),
			Bracket:   []float64{solver.DefaultBracket.Lo, solver.DefaultBracket.Hi},
			Tolerance: solver.DefaultTolerance,
			MaxIter:   solver.DefaultMaxIter,
		},
		Sweep: SweepConfig{
			Param:   growth.SymS,
			Values:  []float64{0.05, 0.1, 0.2, 0.25, 0.4, 0.5, 0.75, 0.9},
			Workers: 1,
		},
		Transition: TransitionConfig{
			KMax:   DefaultKMax,
			Points: DefaultPoints,
		},
		Path: PathConfig{
			K0:      DefaultK0,
			Periods: DefaultPeriods,
		},
	}
}

// Load reads a yaml file over the defaults. Fields absent from the file keep
// their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) GetVariant() (growth.Variant, error) {
	return growth.ParseVariant(c.Variant)
}

func (c *Config) GrowthParams() growth.Params {
	return growth.Params{
		B:     c.Params.B,
		S:     c.Params.S,
		N:     c.Params.N,
		Alpha: c.Params.Alpha,
		Delta: c.Params.Delta,
		Phi:   c.Params.Phi,
	}
}

func (c *Config) SolverConfig() (solver.Config, error) {
	method, err := solver.ParseMethod(c.Solver.Method)
	if err != nil {
		return solver.Config{}, err
	}
	cfg := solver.Config{
		Method:    method,
		Bracket:   solver.DefaultBracket,
		Tolerance: c.Solver.Tolerance,
		MaxIter:   c.Solver.MaxIter,
	}
	switch len(c.Solver.Bracket) {
	case 0:
	case 2:
		cfg.Bracket = solver.Bracket{Lo: c.Solver.Bracket[0], Hi: c.Solver.Bracket[1]}
	default:
		return solver.Config{}, fmt.Errorf("bracket needs exactly 2 values, got %d", len(c.Solver.Bracket))
	}
	return cfg, nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Solver.Bracket = append([]float64(nil), c.Solver.Bracket...)
	out.Sweep.Values = append([]float64(nil), c.Sweep.Values...)
	return &out
}
