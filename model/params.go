package model

import (
	"fmt"
	"math"
)

// Params holds the structural parameters of the trade model.
//
//   - F: fixed labor cost per firm
//   - Beta: effective-labor-supply scaling of population
//   - Phi: baseline labor productivity
//   - Tau: trade-cost exponent applied to exponentiated distance
//   - Theta: demand elasticity of substitution per destination city;
//     a single element broadcasts to every city
type Params struct {
	F     float64
	Beta  float64
	Phi   float64
	Tau   float64
	Theta []float64
}

// Validate checks that every required parameter is present and
// economically meaningful for an n-city model. Theta must hold either a
// single broadcast value or at least n entries, each strictly greater
// than 1 (the markup θ/(θ−1) requires it).
func (p Params) Validate(n int) error {
	for _, c := range []struct {
		name string
		val  float64
	}{
		{"F", p.F},
		{"Beta", p.Beta},
		{"Phi", p.Phi},
	} {
		if math.IsNaN(c.val) || math.IsInf(c.val, 0) || c.val <= 0 {
			return fmt.Errorf("%w: %s must be a positive finite number, got %v", ErrInvalidParams, c.name, c.val)
		}
	}
	if math.IsNaN(p.Tau) || math.IsInf(p.Tau, 0) || p.Tau < 0 {
		return fmt.Errorf("%w: Tau must be a nonnegative finite number, got %v", ErrInvalidParams, p.Tau)
	}
	if len(p.Theta) == 0 {
		return fmt.Errorf("%w: Theta is required", ErrInvalidParams)
	}
	if len(p.Theta) != 1 && len(p.Theta) < n {
		return fmt.Errorf("%w: Theta has %d entries, want 1 (broadcast) or at least %d", ErrInvalidParams, len(p.Theta), n)
	}
	for j, th := range p.Theta {
		if math.IsNaN(th) || math.IsInf(th, 0) || th <= 1 {
			return fmt.Errorf("%w: Theta[%d]=%v, every elasticity must exceed 1", ErrInvalidParams, j, th)
		}
	}

	return nil
}

// thetaFor returns the length-n elasticity vector: the broadcast value
// repeated, or the n-prefix of the supplied vector.
func (p Params) thetaFor(n int) []float64 {
	out := make([]float64, n)
	if len(p.Theta) == 1 {
		for j := range out {
			out[j] = p.Theta[0]
		}

		return out
	}
	copy(out, p.Theta[:n])

	return out
}

// clone returns a deep copy so callers cannot mutate shared state.
func (p Params) clone() Params {
	q := p
	q.Theta = append([]float64(nil), p.Theta...)

	return q
}
