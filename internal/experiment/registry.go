package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/growthlab/internal/growth"
	"github.com/san-kum/growthlab/internal/solver"
)

type Registry struct {
	models  map[string]func(growth.Params) (growth.Model, error)
	methods map[string]solver.Method
}

func NewRegistry() *Registry {
	r := &Registry{
		models:  make(map[string]func(growth.Params) (growth.Model, error)),
		methods: make(map[string]solver.Method),
	}

	for _, v := range []growth.Variant{growth.Basic, growth.Externality} {
		r.models[v.String()] = func(p growth.Params) (growth.Model, error) { return growth.New(v, p) }
	}

	r.methods[solver.ClosedForm.String()] = solver.ClosedForm
	r.methods[solver.Numeric.String()] = solver.Numeric

	return r
}

func (r *Registry) GetModel(name string, p growth.Params) (growth.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", growth.ErrUnknownVariant, name)
	}
	return fn(p)
}

func (r *Registry) GetMethod(name string) (solver.Method, error) {
	m, ok := r.methods[name]
	if !ok {
		return 0, fmt.Errorf("unknown solver method: %s", name)
	}
	return m, nil
}

func (r *Registry) ListModels() []string {
	return sortedKeys(r.models)
}

func (r *Registry) ListMethods() []string {
	return sortedKeys(r.methods)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
