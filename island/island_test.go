package island_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isleq/isleq/island"
	"github.com/isleq/isleq/model"
)

func baseParams() model.Params {
	return model.Params{F: 1.0, Beta: 1.31, Phi: 1.0 / 1.31, Tau: 0.05, Theta: []float64{10.0}}
}

// TestSolve_SatisfiesFullSystem plugs the closed form into the full
// N=1 residual vector: every market-clearing condition must hold to
// floating-point precision, with no root-finding involved.
func TestSolve_SatisfiesFullSystem(t *testing.T) {
	p := baseParams()
	const pop = 1_000_000.0

	sol, err := island.Solve(pop, p.Theta[0], p)
	require.NoError(t, err)

	m, err := model.New(1, p, [][]float64{{0}}, []float64{pop})
	require.NoError(t, err)

	res, err := m.System(sol.Vector())
	require.NoError(t, err)
	require.Len(t, res, 3)

	// Residual scale is set by nominal GDP (~1e6); demand near-zero
	// relative to that.
	for i, r := range res {
		assert.InDelta(t, 0.0, r, 1e-6*sol.GDP, "residual %d at the analytic solution", i)
	}
}

// TestSolve_ConcreteScenario pins the reference calibration: finite
// positive GDP, wage and firm count, with firms = β·L/(θ·f) exactly.
func TestSolve_ConcreteScenario(t *testing.T) {
	p := baseParams()
	sol, err := island.Solve(1_000_000, 10.0, p)
	require.NoError(t, err)

	for _, v := range []float64{sol.GDP, sol.Wage, sol.Firms} {
		assert.True(t, v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v), "solution component %v must be positive and finite", v)
	}
	assert.InDelta(t, 1.31e6/10.0, sol.Firms, 1e-9, "M = beta*L/(theta*f)")
	assert.InDelta(t, 1.31e6*sol.Wage, sol.GDP, 1e-6*sol.GDP, "Y = beta*L*W")
}

// TestSolve_ScalesWithPopulation doubles the population: firm count,
// GDP and the wage all grow (W scales as S^(1/(θ−1)) — a larger market
// raises demand for every variety faster than entry dilutes it).
func TestSolve_ScalesWithPopulation(t *testing.T) {
	p := baseParams()
	small, err := island.Solve(1e5, 10.0, p)
	require.NoError(t, err)
	large, err := island.Solve(2e5, 10.0, p)
	require.NoError(t, err)

	assert.Greater(t, large.Firms, small.Firms)
	assert.Greater(t, large.GDP, small.GDP)
	assert.Greater(t, large.Wage, small.Wage)
	assert.InDelta(t, math.Pow(2, 1.0/9.0), large.Wage/small.Wage, 1e-9, "wage scales as S^(1/(theta-1))")
}

// TestSolve_DomainErrors exercises the ErrDomain boundary.
func TestSolve_DomainErrors(t *testing.T) {
	p := baseParams()

	_, err := island.Solve(0, 10.0, p)
	assert.ErrorIs(t, err, island.ErrDomain, "zero population")

	_, err = island.Solve(-5, 10.0, p)
	assert.ErrorIs(t, err, island.ErrDomain, "negative population")

	_, err = island.Solve(1e6, 1.0, p)
	assert.ErrorIs(t, err, island.ErrDomain, "theta must exceed 1")

	bad := p
	bad.Phi = 0
	_, err = island.Solve(1e6, 10.0, bad)
	assert.ErrorIs(t, err, island.ErrDomain, "nonpositive phi")
}

// TestVector_Order pins the guess-block order Y, W, M.
func TestVector_Order(t *testing.T) {
	s := island.Solution{GDP: 1, Wage: 2, Firms: 3}
	assert.Equal(t, []float64{1, 2, 3}, s.Vector())
}
