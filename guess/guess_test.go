package guess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isleq/isleq/guess"
	"github.com/isleq/isleq/island"
	"github.com/isleq/isleq/model"
	"github.com/isleq/isleq/solve"
)

var (
	testDistances = [][]float64{
		{0.0, 0.4, 0.8},
		{0.4, 0.0, 0.6},
		{0.8, 0.6, 0.0},
	}
	testPopulation = []float64{1.2e6, 0.8e6, 1.5e6}
)

func testParams() model.Params {
	return model.Params{F: 1.0, Beta: 1.31, Phi: 1.0 / 1.31, Tau: 0.05, Theta: []float64{10.0}}
}

func testModel(t *testing.T, n int) *model.Model {
	t.Helper()
	m, err := model.New(n, testParams(), testDistances, testPopulation)
	require.NoError(t, err)

	return m
}

// TestNilModel covers the shared guard of both strategies.
func TestNilModel(t *testing.T) {
	_, err := guess.Islands{}.Guess(nil)
	assert.ErrorIs(t, err, guess.ErrNilModel)

	_, err = guess.HotStart{}.Guess(nil)
	assert.ErrorIs(t, err, guess.ErrNilModel)
}

// TestIslands_MatchesClosedForm checks the assembled vector against the
// per-city autarky solutions block by block.
func TestIslands_MatchesClosedForm(t *testing.T) {
	m := testModel(t, 2)
	x, err := guess.Islands{}.Guess(m)
	require.NoError(t, err)
	require.Len(t, x, 7)

	p := testParams()
	a, err := island.Solve(testPopulation[0], 10.0, p)
	require.NoError(t, err)
	b, err := island.Solve(testPopulation[1], 10.0, p)
	require.NoError(t, err)

	assert.Equal(t, 1.0, x[0], "non-numeraire price starts at parity")
	assert.Equal(t, []float64{a.GDP, b.GDP}, x[1:3])
	assert.Equal(t, []float64{a.Wage, b.Wage}, x[3:5])
	assert.Equal(t, []float64{a.Firms, b.Firms}, x[5:7])
}

// TestHotStart_SingleCity returns the closed form directly; there is no
// prefix to continue from.
func TestHotStart_SingleCity(t *testing.T) {
	m, err := model.New(1, testParams(), testDistances, testPopulation)
	require.NoError(t, err)

	x, err := guess.HotStart{}.Guess(m)
	require.NoError(t, err)

	sol, err := island.Solve(testPopulation[0], 10.0, testParams())
	require.NoError(t, err)
	assert.Equal(t, sol.Vector(), x)
}

// TestStrategies_SeedTheSameEquilibrium runs the full three-city solve
// from both strategies: each must converge, and to the same root.
func TestStrategies_SeedTheSameEquilibrium(t *testing.T) {
	m := testModel(t, 3)
	s := solve.New(m)

	xi, err := guess.Islands{}.Guess(m)
	require.NoError(t, err)
	fromIslands, err := s.Solve(xi)
	require.NoError(t, err)
	require.True(t, fromIslands.Converged, "islands seed: %s", fromIslands.Message)

	xh, err := guess.HotStart{}.Guess(m)
	require.NoError(t, err)
	require.Len(t, xh, m.Size())
	fromHot, err := s.Solve(xh)
	require.NoError(t, err)
	require.True(t, fromHot.Converged, "hot-start seed: %s", fromHot.Message)

	for i := range fromIslands.X {
		assert.InDelta(t, fromIslands.X[i], fromHot.X[i], 1e-6*(1+fromIslands.X[i]), "component %d", i)
	}
}

// TestHotStart_DivergencePropagates starves the intermediate solver so
// the two-city prefix cannot converge: the continuation must abort with
// an error wrapping the divergence sentinel and naming the prefix size.
func TestHotStart_DivergencePropagates(t *testing.T) {
	m := testModel(t, 3)
	h := guess.HotStart{SolverOptions: []solve.Option{
		solve.WithMaxIterations(1),
		solve.WithTolerance(1e-14),
	}}

	_, err := h.Guess(m)
	require.ErrorIs(t, err, solve.ErrDivergence)
	assert.Contains(t, err.Error(), "2 cities")
}

// TestHotStart_LeavesCallerModelUntouched verifies the continuation
// derives prefixes instead of mutating the model it was handed.
func TestHotStart_LeavesCallerModelUntouched(t *testing.T) {
	m := testModel(t, 3)
	_, err := guess.HotStart{}.Guess(m)
	require.NoError(t, err)
	assert.Equal(t, 3, m.N())
}
