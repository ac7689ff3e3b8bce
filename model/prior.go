package model

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Prior is a Dirichlet concentration that is either one scalar broadcast
// to every index or an explicit per-index vector. The sampler only reads
// it through At and Sum so both forms share one update formula.
type Prior struct {
	value  float64
	values []float64
}

// Symmetric broadcasts v to every index.
func Symmetric(v float64) Prior {
	return Prior{value: v}
}

// Asymmetric uses vs[i] for index i, vs is copied.
func Asymmetric(vs []float64) Prior {
	return Prior{values: append([]float64(nil), vs...)}
}

func (p Prior) At(i uint32) float64 {
	if p.values == nil {
		return p.value
	}
	return p.values[i]
}

// Sum is the total concentration over n indices.
func (p Prior) Sum(n uint32) float64 {
	if p.values == nil {
		return float64(n) * p.value
	}
	return floats.Sum(p.values)
}

func (p Prior) validate(name string, n uint32) error {
	if p.values == nil {
		if !(p.value > 0) {
			return errors.Wrapf(ErrConfiguration, "%s must be positive, got %v", name, p.value)
		}
		return nil
	}
	if len(p.values) != int(n) {
		return errors.Wrapf(ErrConfiguration, "%s has %d entries, want %d", name, len(p.values), n)
	}
	for i, v := range p.values {
		if !(v > 0) {
			return errors.Wrapf(ErrConfiguration, "%s[%d] must be positive, got %v", name, i, v)
		}
	}
	return nil
}
