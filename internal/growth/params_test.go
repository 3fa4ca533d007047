package growth

import (
	"errors"
	"testing"
)

func baseParams() Params {
	return Params{B: 10, S: 0.2, N: 0.02, Alpha: 1.0 / 3.0, Delta: 1, Phi: 0.4}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		mutate  func(p *Params)
		field   string
	}{
		{"valid basic", Basic, func(p *Params) {}, ""},
		{"valid externality", Externality, func(p *Params) {}, ""},
		{"zero savings", Basic, func(p *Params) { p.S = 0 }, SymS},
		{"savings one", Externality, func(p *Params) { p.S = 1 }, SymS},
		{"zero productivity", Basic, func(p *Params) { p.B = 0 }, SymB},
		{"population collapse", Basic, func(p *Params) { p.N = -1 }, SymN},
		{"alpha one", Basic, func(p *Params) { p.Alpha = 1 }, SymAlpha},
		{"negative delta", Basic, func(p *Params) { p.Delta = -0.1 }, SymDelta},
		{"delta plus n not positive", Basic, func(p *Params) { p.Delta = 0; p.N = 0 }, SymDelta},
		{"phi zero", Externality, func(p *Params) { p.Phi = 0 }, SymPhi},
		{"phi ignored by basic", Basic, func(p *Params) { p.Phi = 5 }, ""},
		{"delta ignored by externality", Externality, func(p *Params) { p.Delta = 5 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParams()
			tt.mutate(&p)
			err := p.Validate(tt.variant)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrDomain) {
				t.Fatalf("expected ErrDomain, got %v", err)
			}
			var de *DomainError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DomainError, got %T", err)
			}
			if de.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, de.Field)
			}
		})
	}
}

func TestParamsWith(t *testing.T) {
	p := baseParams()

	q, err := p.With(SymS, 0.5)
	if err != nil {
		t.Fatalf("with failed: %v", err)
	}
	if q.S != 0.5 {
		t.Errorf("expected s=0.5, got %f", q.S)
	}
	if p.S != 0.2 {
		t.Errorf("original mutated: s=%f", p.S)
	}

	if _, err := p.With("gamma", 1); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestParamsGet(t *testing.T) {
	p := baseParams()
	for _, name := range ParamNames() {
		if _, err := p.Get(name); err != nil {
			t.Errorf("get %s: %v", name, err)
		}
	}
	v, _ := p.Get(SymPhi)
	if v != 0.4 {
		t.Errorf("expected phi 0.4, got %f", v)
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in   string
		want Variant
		ok   bool
	}{
		{"basic", Basic, true},
		{"Externality", Externality, true},
		{"", Basic, true},
		{"romer", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if tt.ok != (err == nil) {
			t.Errorf("%q: unexpected error state %v", tt.in, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
