package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/penrose/pkg/adapters/memory"
	"github.com/aretw0/penrose/pkg/domain"
)

// Builder accumulates a tiling definition. Parse errors are collected and
// reported by Build, so calls can be chained.
type Builder struct {
	tiling domain.Tiling
	errs   []error
}

// New starts a tiling called name with the Penrose turn angle and no rules.
func New(name string) *Builder {
	return &Builder{
		tiling: domain.Tiling{
			Name:  name,
			Angle: domain.PenroseAngle,
			Rules: domain.ProductionTable{},
		},
	}
}

// From starts a builder from an existing tiling, e.g. to derive a variant.
func From(t domain.Tiling) *Builder {
	b := New(t.Name)
	b.tiling.Angle = t.Angle
	b.tiling.Seed = append(domain.Sequence(nil), t.Seed...)
	b.tiling.Rules = t.Rules.Clone()
	return b
}

// Name renames the tiling.
func (b *Builder) Name(name string) *Builder {
	b.tiling.Name = name
	return b
}

// Angle sets the turn angle in degrees.
func (b *Builder) Angle(degrees float64) *Builder {
	b.tiling.Angle = degrees
	return b
}

// Seed sets the axiom.
func (b *Builder) Seed(text string) *Builder {
	seq, err := domain.ParseSequence(text)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("seed: %w", err))
		return b
	}
	b.tiling.Seed = seq
	return b
}

// Rule sets the replacement of s, overwriting any previous rule for it.
func (b *Builder) Rule(s domain.Symbol, body string) *Builder {
	seq, err := domain.ParseSequence(body)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("rule %s: %w", s.Name(), err))
		return b
	}
	b.tiling.Rules[s] = seq
	return b
}

// Erase makes s disappear on every pass.
func (b *Builder) Erase(s domain.Symbol) *Builder {
	b.tiling.Rules[s] = domain.Sequence{}
	return b
}

// Keep makes s rewrite to itself.
func (b *Builder) Keep(s domain.Symbol) *Builder {
	b.tiling.Rules[s] = domain.Sequence{s}
	return b
}

// Drop removes the rule for s.
func (b *Builder) Drop(s domain.Symbol) *Builder {
	delete(b.tiling.Rules, s)
	return b
}

// Build validates and returns the tiling.
func (b *Builder) Build() (domain.Tiling, error) {
	if len(b.errs) > 0 {
		return domain.Tiling{}, errors.Join(b.errs...)
	}
	t := b.tiling
	t.Seed = append(domain.Sequence(nil), t.Seed...)
	t.Rules = t.Rules.Clone()
	if err := t.Validate(); err != nil {
		return domain.Tiling{}, err
	}
	return t, nil
}

// Registry builds every tiling and registers them in a memory registry.
func Registry(builders ...*Builder) (*memory.Registry, error) {
	tilings := make([]domain.Tiling, 0, len(builders))
	for _, b := range builders {
		t, err := b.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build tiling %q: %w", b.tiling.Name, err)
		}
		tilings = append(tilings, t)
	}
	return memory.NewRegistry(tilings...)
}
