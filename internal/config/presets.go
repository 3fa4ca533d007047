package config

import "sort"

func preset(variant string, mutate func(c *Config)) *Config {
	c := DefaultConfig()
	c.Variant = variant
	mutate(c)
	return c
}

var Presets = map[string]map[string]*Config{
	"basic": {
		"baseline": preset("basic", func(c *Config) {}),
		"depreciation": preset("basic", func(c *Config) {
			c.Params.Delta = 0.05
			c.Transition.KMax = 400
			c.Path.Periods = 200
		}),
		"savings": preset("basic", func(c *Config) {
			c.Solver.Method = "numeric"
			c.Sweep.Workers = 4
		}),
		"population": preset("basic", func(c *Config) {
			c.Sweep.Param = "n"
			c.Sweep.Values = []float64{-0.01, 0, 0.01, 0.02, 0.05, 0.1}
		}),
	},
	"externality": {
		"baseline": preset("externality", func(c *Config) {}),
		"savings": preset("externality", func(c *Config) {
			c.Solver.Method = "numeric"
			c.Sweep.Values = []float64{0.05, 0.1, 0.2, 0.3, 0.4}
		}),
		"strong": preset("externality", func(c *Config) {
			c.Params.Phi = 0.8
			c.Solver.Bracket = []float64{0.1, 1e7}
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(variant, name string) *Config {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil
	}
	cfg, ok := variantPresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(variant string) []string {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(variantPresets))
	for name := range variantPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
